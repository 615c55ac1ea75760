// internal/api/handler/web/dashboard.go
package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/dashboard"
	"github.com/newthinker/treasury/internal/export"
	"go.uber.org/zap"
)

// Export kinds and statuses recorded for downloads.
const (
	ExportFinancials = "financials"
	ExportRates      = "rates"

	ExportOK      = "ok"
	ExportInvalid = "invalid"
)

var tabLabels = map[core.Tab]string{
	core.TabOverview: "Overview",
	core.TabRatios:   "Financial Ratios",
	core.TabTrends:   "Trends",
	core.TabPeers:    "Peer Comparison",
	core.TabRedFlags: "Red Flags",
	core.TabIndustry: "Industry Analysis",
	core.TabEvents:   "Events & Calls",
	core.TabNews:     "News",
	core.TabRates:    "Interest Rates",
}

var categoryLabels = map[core.Category]string{
	core.CategoryValuation:     "Valuation",
	core.CategoryProfitability: "Profitability",
	core.CategoryLiquidity:     "Liquidity",
	core.CategoryLeverage:      "Leverage",
	core.CategoryEfficiency:    "Efficiency",
}

var statementLabels = map[export.StatementType]string{
	export.StatementIncome:   "Income Statement",
	export.StatementBalance:  "Balance Sheet",
	export.StatementCashFlow: "Cash Flow",
}

var formatLabels = map[export.Format]string{
	export.FormatXLSX: "Excel",
	export.FormatCSV:  "CSV",
}

// TabLink is one tab button.
type TabLink struct {
	Name   string
	Label  string
	Active bool
}

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// DashboardData holds data for the dashboard template
type DashboardData struct {
	Title       string
	Input       string
	State       dashboard.State
	View        dashboard.View
	ActiveTab   string
	Tabs        []TabLink
	Categories  []Option
	Statements  []Option
	Formats     []Option
	Export      dashboard.ExportForm
	RecentSince int
}

func (h *Handler) dashboardData(c *dashboard.Controller) DashboardData {
	st := c.State()
	form := c.ExportForm()

	input := st.Pending
	if input == "" {
		input = st.Ticker
	}

	data := DashboardData{
		Title:       "Dashboard",
		Input:       input,
		State:       st,
		View:        c.View(),
		ActiveTab:   string(st.Tab),
		Export:      form,
		RecentSince: h.recentSince,
	}
	if st.Snapshot != nil && st.Ticker != "" {
		data.Title = st.Ticker
	}

	for _, tab := range core.Tabs {
		data.Tabs = append(data.Tabs, TabLink{Name: string(tab), Label: tabLabels[tab], Active: tab == st.Tab})
	}
	for _, cat := range core.Categories {
		data.Categories = append(data.Categories, Option{
			Value: string(cat), Label: categoryLabels[cat], Selected: cat == st.Category,
		})
	}
	for _, s := range export.StatementTypes {
		data.Statements = append(data.Statements, Option{
			Value: string(s), Label: statementLabels[s], Selected: s == form.Statement,
		})
	}
	for _, f := range export.Formats {
		data.Formats = append(data.Formats, Option{
			Value: string(f), Label: formatLabels[f], Selected: f == form.Format,
		})
	}
	return data
}

// Dashboard renders the dashboard page. A new session first loads the
// default ticker.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, created := h.session(w, r)

	if created && h.defaultTicker != "" {
		if err := sess.Controller.Submit(r.Context(), h.defaultTicker); err != nil {
			h.logger.Warn("initial load failed",
				zap.String("ticker", h.defaultTicker),
				zap.Error(err),
			)
		}
	}

	h.render(w, h.dashboardData(sess.Controller))
}

// Search submits the ticker form.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// The outcome, including a validation message, is kept in the state
	err := sess.Controller.Submit(r.Context(), r.FormValue("ticker"))
	if err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		h.logger.Debug("search failed", zap.Error(err))
	}

	backToDashboard(w, r)
}

// Ratios switches the ratio category. htmx requests get only the ratio
// table back.
func (h *Handler) Ratios(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)

	if err := sess.Controller.SelectCategory(r.URL.Query().Get("category")); err != nil {
		http.Error(w, core.UserMessage(err), http.StatusBadRequest)
		return
	}

	if !isHTMX(r) {
		backToDashboard(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(sess.Controller.View().Ratios))
}

// Tab switches the visible pane.
func (h *Handler) Tab(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)

	if err := sess.Controller.SelectTab(r.PathValue("name")); err != nil {
		http.Error(w, core.UserMessage(err), http.StatusBadRequest)
		return
	}
	backToDashboard(w, r)
}

// YearPreset saves the export form and applies a bulk year helper.
func (h *Handler) YearPreset(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)

	if err := h.saveExportForm(sess.Controller, r); err != nil {
		http.Error(w, core.UserMessage(err), http.StatusBadRequest)
		return
	}
	if err := sess.Controller.ApplyYearPreset(r.PathValue("preset")); err != nil {
		http.Error(w, core.UserMessage(err), http.StatusBadRequest)
		return
	}
	backToDashboard(w, r)
}

// Financials sends the browser to the statement download. A validation
// failure returns to the dashboard with the message shown instead.
func (h *Handler) Financials(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)

	if err := h.saveExportForm(sess.Controller, r); err != nil {
		http.Error(w, core.UserMessage(err), http.StatusBadRequest)
		return
	}

	req, err := sess.Controller.ExportFinancials()
	if err != nil {
		h.recorder.RecordExport(ExportFinancials, ExportInvalid)
		backToDashboard(w, r)
		return
	}

	h.recorder.RecordExport(ExportFinancials, ExportOK)
	http.Redirect(w, r,
		h.links.FinancialsURL(req.Ticker, string(req.Statement), req.Years, string(req.Format)),
		http.StatusFound)
}

// Rates sends the browser to the interest rates download.
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)

	req, err := sess.Controller.ExportRates(r.URL.Query().Get("format"))
	if err != nil {
		h.recorder.RecordExport(ExportRates, ExportInvalid)
		backToDashboard(w, r)
		return
	}

	h.recorder.RecordExport(ExportRates, ExportOK)
	http.Redirect(w, r, h.links.RatesURL(string(req.Format)), http.StatusFound)
}

// saveExportForm copies the submitted statement type, format and checked
// years into the controller. The checkboxes are the whole year selection.
func (h *Handler) saveExportForm(c *dashboard.Controller, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return core.WrapError(core.ErrValidation, err)
	}

	if v := r.Form.Get("type"); v != "" {
		if err := c.SetStatement(v); err != nil {
			return err
		}
	}
	if v := r.Form.Get("format"); v != "" {
		if err := c.SetFormat(v); err != nil {
			return err
		}
	}

	var years []int
	for _, v := range r.Form["year"] {
		y, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return core.NewError(core.ErrValidation, "Invalid year: "+v)
		}
		years = append(years, y)
	}
	c.SetYears(years)
	return nil
}

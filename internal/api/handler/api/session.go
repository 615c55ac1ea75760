// internal/api/handler/api/session.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/newthinker/treasury/internal/api/response"
	"github.com/newthinker/treasury/internal/api/session"
	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/dashboard"
)

// SessionSource resolves the session of a request.
type SessionSource interface {
	FromRequest(r *http.Request) (*session.Session, error)
}

// Links builds backend download addresses.
type Links interface {
	FinancialsURL(ticker, statementType string, years []string, format string) string
	RatesURL(format string) string
}

// SessionHandler exposes a browser session's dashboard as JSON.
type SessionHandler struct {
	sessions SessionSource
	links    Links
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions SessionSource, links Links) *SessionHandler {
	return &SessionHandler{sessions: sessions, links: links}
}

// StateResponse is the JSON form of dashboard.State.
type StateResponse struct {
	Status         string     `json:"status"`
	Ticker         string     `json:"ticker,omitempty"`
	Pending        string     `json:"pending,omitempty"`
	Symbol         string     `json:"symbol,omitempty"`
	Category       string     `json:"category"`
	Tab            string     `json:"tab"`
	Error          string     `json:"error,omitempty"`
	ContentVisible bool       `json:"content_visible"`
	SubmitEnabled  bool       `json:"submit_enabled"`
	FetchedAt      *time.Time `json:"fetched_at,omitempty"`
}

// SearchRequest is the request body for a search.
type SearchRequest struct {
	Ticker string `json:"ticker"`
}

// DownloadResponse carries a backend download address.
type DownloadResponse struct {
	URL string `json:"url"`
}

func newStateResponse(st dashboard.State) StateResponse {
	resp := StateResponse{
		Status:         st.Status.String(),
		Ticker:         st.Ticker,
		Pending:        st.Pending,
		Category:       string(st.Category),
		Tab:            string(st.Tab),
		Error:          st.Error,
		ContentVisible: st.ContentVisible,
		SubmitEnabled:  st.SubmitEnabled,
	}
	if st.Snapshot != nil {
		resp.Symbol = st.Snapshot.Symbol
	}
	if !st.FetchedAt.IsZero() {
		t := st.FetchedAt.UTC()
		resp.FetchedAt = &t
	}
	return resp
}

// State returns the dashboard state of the caller's session.
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newStateResponse(sess.Controller.State()))
}

// Search submits a ticker on the caller's session.
func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrValidation, err))
		return
	}

	if err := sess.Controller.Submit(r.Context(), req.Ticker); err != nil {
		response.Error(w, searchStatus(err), err)
		return
	}
	response.JSON(w, http.StatusOK, newStateResponse(sess.Controller.State()))
}

// Financials returns the statement download address for the session's
// ticker and year selection.
func (h *SessionHandler) Financials(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	req, err := sess.Controller.ExportFinancials()
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, DownloadResponse{
		URL: h.links.FinancialsURL(req.Ticker, string(req.Statement), req.Years, string(req.Format)),
	})
}

// Rates returns the interest rates download address. The format query
// parameter overrides the session's selected format.
func (h *SessionHandler) Rates(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	req, err := sess.Controller.ExportRates(r.URL.Query().Get("format"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, DownloadResponse{URL: h.links.RatesURL(string(req.Format))})
}

func searchStatus(err error) int {
	if errors.Is(err, dashboard.ErrSuperseded) {
		return http.StatusConflict
	}
	return response.StatusFor(err)
}

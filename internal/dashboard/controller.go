// Package dashboard holds the per-session dashboard controller: the state
// machine driving fetches, the rendered regions and the export form.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/export"
	"github.com/newthinker/treasury/internal/metrics"
	"github.com/newthinker/treasury/internal/render"
	"go.uber.org/zap"
)

// MsgEmptyTicker is shown when a search is submitted without a ticker.
const MsgEmptyTicker = "Please enter a stock ticker"

// ErrSuperseded is returned for a fetch that completed after a newer one
// was started. Its result is discarded.
var ErrSuperseded = &core.Error{Code: "FETCH_SUPERSEDED", Message: "superseded by a newer search"}

// Fetcher loads the snapshot for a ticker.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, ticker string) (*core.FinancialSnapshot, error)
}

// Recorder receives dashboard metrics. *metrics.Registry implements it.
type Recorder interface {
	RecordFetch(outcome string, duration float64)
	RecordStale()
	RecordRender(section string)
}

type nopRecorder struct{}

func (nopRecorder) RecordFetch(string, float64) {}
func (nopRecorder) RecordStale()                {}
func (nopRecorder) RecordRender(string)         {}

// Options configures a Controller.
type Options struct {
	Logger   *zap.Logger
	Recorder Recorder
	// Now is the clock used for news timestamps. Defaults to time.Now.
	Now func() time.Time

	Years       []int
	RecentSince int
	Statement   export.StatementType
	Format      export.Format
}

// Controller owns one dashboard. All methods are safe for concurrent use.
type Controller struct {
	fetcher     Fetcher
	renderer    *render.Renderer
	recorder    Recorder
	logger      *zap.Logger
	now         func() time.Time
	recentSince int

	mu        sync.Mutex
	seq       uint64
	state     State
	view      View
	selection *export.Selection
}

// New creates a Controller in the Idle state.
func New(fetcher Fetcher, renderer *render.Renderer, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RecentSince == 0 {
		opts.RecentSince = export.RecentSince
	}
	if opts.Statement == "" {
		opts.Statement = export.StatementIncome
	}
	if opts.Format == "" {
		opts.Format = export.FormatXLSX
	}

	return &Controller{
		fetcher:     fetcher,
		renderer:    renderer,
		recorder:    opts.Recorder,
		logger:      opts.Logger,
		now:         opts.Now,
		recentSince: opts.RecentSince,
		state: State{
			Status:        StatusIdle,
			Category:      core.CategoryValuation,
			Tab:           core.TabOverview,
			SubmitEnabled: true,
		},
		selection: export.NewSelection(opts.Years, opts.Statement, opts.Format),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns the rendered regions.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Submit fetches the snapshot for input and renders it. An empty ticker
// is a validation error: the message is shown and nothing is fetched.
// A fetch superseded by a later Submit returns ErrSuperseded and leaves
// the state alone.
func (c *Controller) Submit(ctx context.Context, input string) error {
	ticker := strings.ToUpper(strings.TrimSpace(input))
	if ticker == "" {
		err := core.NewError(core.ErrValidation, MsgEmptyTicker)
		c.mu.Lock()
		c.state.Error = err.Message
		c.mu.Unlock()
		return err
	}

	id := c.begin(ticker)
	c.logger.Debug("fetching snapshot", zap.String("ticker", ticker), zap.Uint64("request_id", id))

	start := time.Now()
	snap, err := c.fetcher.FetchSnapshot(ctx, ticker)
	if err == nil {
		err = checkSnapshot(snap)
	}

	return c.complete(id, ticker, snap, err, time.Since(start))
}

// begin moves to Loading and returns the id of the new request.
func (c *Controller) begin(ticker string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.state.Status = StatusLoading
	c.state.Pending = ticker
	c.state.Error = ""
	c.state.ContentVisible = false
	c.state.SubmitEnabled = false
	return c.seq
}

// complete applies the result of request id if it is still the latest.
func (c *Controller) complete(id uint64, ticker string, snap *core.FinancialSnapshot, fetchErr error, elapsed time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recorder.RecordFetch(fetchOutcome(fetchErr), elapsed.Seconds())

	if id != c.seq {
		c.recorder.RecordStale()
		c.logger.Debug("discarding stale snapshot",
			zap.String("ticker", ticker),
			zap.Uint64("request_id", id),
			zap.Uint64("latest_id", c.seq),
		)
		return ErrSuperseded
	}

	if fetchErr != nil {
		c.fail(ticker, fetchErr)
		return fetchErr
	}

	view, err := c.renderAll(snap, c.state.Category)
	if err != nil {
		err = core.WrapError(core.ErrRender, err)
		c.fail(ticker, err)
		return err
	}

	c.view = view
	c.state.Status = StatusDisplayed
	c.state.Ticker = ticker
	c.state.Pending = ""
	c.state.Snapshot = snap
	c.state.FetchedAt = c.now()
	c.state.Error = ""
	c.state.ContentVisible = true
	c.state.SubmitEnabled = true

	c.logger.Info("snapshot displayed",
		zap.String("ticker", ticker),
		zap.Uint64("request_id", id),
		zap.Duration("duration", elapsed),
	)
	return nil
}

// fail moves to ErrorShown. The previous snapshot and view are kept.
func (c *Controller) fail(ticker string, err error) {
	c.state.Status = StatusErrorShown
	c.state.Pending = ""
	c.state.Error = core.UserMessage(err)
	c.state.ContentVisible = false
	c.state.SubmitEnabled = true

	c.logger.Warn("fetch failed", zap.String("ticker", ticker), zap.Error(err))
}

// SelectCategory switches the ratio panel. While Displayed only the
// Ratios region is re-rendered, from the dataset already held.
func (c *Controller) SelectCategory(name string) error {
	category, err := core.ParseCategory(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Category = category
	if c.state.Status != StatusDisplayed {
		return nil
	}

	html, err := c.renderer.Ratios(c.state.Snapshot, category)
	if err != nil {
		return core.WrapError(core.ErrRender, err)
	}
	c.recorder.RecordRender(render.SectionRatios)
	c.view.Ratios = html
	return nil
}

// SelectTab switches the visible pane. It does not depend on fetch state.
func (c *Controller) SelectTab(name string) error {
	tab, err := core.ParseTab(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state.Tab = tab
	c.mu.Unlock()
	return nil
}

func (c *Controller) renderAll(snap *core.FinancialSnapshot, category core.Category) (View, error) {
	var v View
	steps := []struct {
		section string
		dst     *template.HTML
		fn      func() (template.HTML, error)
	}{
		{render.SectionHeader, &v.Header, func() (template.HTML, error) { return c.renderer.Header(snap) }},
		{render.SectionOverview, &v.Overview, func() (template.HTML, error) { return c.renderer.Overview(snap) }},
		{render.SectionRatios, &v.Ratios, func() (template.HTML, error) { return c.renderer.Ratios(snap, category) }},
		{render.SectionTrends, &v.Trends, func() (template.HTML, error) { return c.renderer.Trends(snap) }},
		{render.SectionPeers, &v.Peers, func() (template.HTML, error) { return c.renderer.Peers(snap) }},
		{render.SectionRedFlags, &v.RedFlags, func() (template.HTML, error) { return c.renderer.RedFlags(snap) }},
		{render.SectionIndustry, &v.Industry, func() (template.HTML, error) { return c.renderer.Industry(snap) }},
		{render.SectionEvents, &v.Events, func() (template.HTML, error) { return c.renderer.Events(snap) }},
		{render.SectionTranscripts, &v.Transcripts, func() (template.HTML, error) { return c.renderer.Transcripts(snap) }},
		{render.SectionNews, &v.News, func() (template.HTML, error) { return c.renderer.News(snap, c.now()) }},
		{render.SectionRates, &v.Rates, func() (template.HTML, error) { return c.renderer.Rates(snap) }},
	}

	for _, step := range steps {
		html, err := step.fn()
		if err != nil {
			return View{}, err
		}
		*step.dst = html
		c.recorder.RecordRender(step.section)
	}
	return v, nil
}

// checkSnapshot rejects payloads a Fetcher returned without error but
// that cannot be displayed.
func checkSnapshot(snap *core.FinancialSnapshot) error {
	if snap == nil {
		return core.WrapError(core.ErrDecode, fmt.Errorf("empty snapshot"))
	}
	if snap.Error != "" {
		return core.NewError(core.ErrApplication, snap.Error)
	}
	return nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, core.ErrApplication):
		return metrics.OutcomeApplication
	case errors.Is(err, core.ErrDecode):
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeTransport
	}
}

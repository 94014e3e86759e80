package webcore

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Defaults for interactive search controllers.
const (
	DefaultDebounce = 500 * time.Millisecond
	MinQueryLength  = 2
	DefaultLimit    = 10
)

// Filter is the per-endpoint filter payload a Controller dispatches with.
type Filter any

// ResultPage is the normalized outcome of one dispatched search.
type ResultPage struct {
	Results    []SearchResult
	Total      int
	Page       int
	Limit      int
	TotalPages int
	Breakdown  *Breakdown
	Message    string
}

// FetchFunc runs one search against the API for a controller.
type FetchFunc[F Filter] func(ctx context.Context, query string, filter F, page, limit int) (ResultPage, error)

// State is a snapshot of a controller's interactive search state.
type State struct {
	Query      string
	Page       int
	Limit      int
	Results    []SearchResult
	Loading    bool
	Error      string
	Total      int
	TotalPages int
	Breakdown  *Breakdown
	Message    string
}

// Controller drives an interactive search box against one endpoint.
// Typing is debounced; filter and page changes dispatch immediately. A
// stale response (superseded by a newer dispatch) is dropped, so rapid
// input never shows out-of-order results. All methods are safe for
// concurrent use.
type Controller[F Filter] struct {
	fetch    FetchFunc[F]
	ctx      context.Context
	debounce time.Duration
	onChange func(State)

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	filter F
	state  State
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	ctx      context.Context
	debounce time.Duration
	limit    int
	onChange func(State)
}

// WithDebounce overrides the debounce interval applied to SetQuery.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *controllerConfig) {
		c.debounce = d
	}
}

// WithLimit sets the page size used for dispatches.
func WithLimit(n int) ControllerOption {
	return func(c *controllerConfig) {
		c.limit = n
	}
}

// WithOnChange registers a callback invoked after every state change.
// The callback runs with the controller unlocked and receives a copy.
func WithOnChange(fn func(State)) ControllerOption {
	return func(c *controllerConfig) {
		c.onChange = fn
	}
}

// WithContext sets the context used for dispatched requests.
func WithContext(ctx context.Context) ControllerOption {
	return func(c *controllerConfig) {
		c.ctx = ctx
	}
}

// NewController creates a search controller over a fetch function.
func NewController[F Filter](fetch FetchFunc[F], opts ...ControllerOption) *Controller[F] {
	cfg := controllerConfig{
		ctx:      context.Background(),
		debounce: DefaultDebounce,
		limit:    DefaultLimit,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return &Controller[F]{
		fetch:    fetch,
		ctx:      cfg.ctx,
		debounce: cfg.debounce,
		onChange: cfg.onChange,
		state: State{
			Page:  1,
			Limit: cfg.limit,
		},
	}
}

// State returns a snapshot of the current state.
func (c *Controller[F]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetQuery records a new query. A query shorter than MinQueryLength never
// dispatches; clearing the query resets results without a network call.
// Otherwise a dispatch is scheduled after the debounce interval,
// replacing any pending one.
func (c *Controller[F]) SetQuery(query string) {
	c.mu.Lock()
	c.stopTimerLocked()
	c.state.Query = query
	c.state.Page = 1

	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < MinQueryLength {
		c.seq++ // invalidate any in-flight response
		c.state.Results = nil
		c.state.Loading = false
		c.state.Error = ""
		c.state.Total = 0
		c.state.TotalPages = 0
		c.state.Breakdown = nil
		c.state.Message = ""
		c.notifyLocked()
		return
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		// Re-check the gate: the query may have been cleared while this
		// timer was firing.
		c.mu.Lock()
		c.dispatchIfQueryLocked()
	})
	// Publish the new query right away so observers don't render the old
	// one for the length of the debounce window.
	c.notifyLocked()
}

// SetFilter replaces the filter and dispatches immediately when a valid
// query is present.
func (c *Controller[F]) SetFilter(filter F) {
	c.mu.Lock()
	c.filter = filter
	c.state.Page = 1
	c.dispatchIfQueryLocked()
}

// SetPage jumps to a page and dispatches immediately. Out-of-range pages
// are no-ops; until a search has completed only page 1 is in range.
func (c *Controller[F]) SetPage(page int) {
	c.mu.Lock()
	last := c.state.TotalPages
	if last < 1 {
		last = 1
	}
	if page < 1 || page > last {
		c.mu.Unlock()
		return
	}
	c.state.Page = page
	c.dispatchIfQueryLocked()
}

// NextPage advances one page; a no-op on the last page.
func (c *Controller[F]) NextPage() {
	c.mu.Lock()
	if c.state.Page >= c.state.TotalPages {
		c.mu.Unlock()
		return
	}
	c.state.Page++
	c.dispatchIfQueryLocked()
}

// PrevPage goes back one page; a no-op on the first.
func (c *Controller[F]) PrevPage() {
	c.mu.Lock()
	if c.state.Page <= 1 {
		c.mu.Unlock()
		return
	}
	c.state.Page--
	c.dispatchIfQueryLocked()
}

// Search flushes any pending debounce and dispatches now.
func (c *Controller[F]) Search() {
	c.mu.Lock()
	c.dispatchIfQueryLocked()
}

// Reset clears all state, cancels pending work, and invalidates any
// in-flight response.
func (c *Controller[F]) Reset() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.seq++
	var zero F
	c.filter = zero
	limit := c.state.Limit
	c.state = State{Page: 1, Limit: limit}
	c.notifyLocked()
}

// dispatchIfQueryLocked dispatches when the current query passes the
// min-length gate, otherwise just releases the lock.
// Callers must hold c.mu; the lock is released on return.
func (c *Controller[F]) dispatchIfQueryLocked() {
	trimmed := strings.TrimSpace(c.state.Query)
	if len([]rune(trimmed)) < MinQueryLength {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	c.dispatchLocked()
}

// dispatchLocked starts a fetch for the current state under a fresh
// sequence number. Callers must hold c.mu; the lock is released before
// the fetch runs and re-taken to apply the response.
func (c *Controller[F]) dispatchLocked() {
	c.seq++
	seq := c.seq
	query := strings.TrimSpace(c.state.Query)
	filter := c.filter
	page := c.state.Page
	limit := c.state.Limit

	c.state.Loading = true
	c.state.Error = ""
	c.notifyLocked()

	go func() {
		res, err := c.fetch(c.ctx, query, filter, page, limit)

		c.mu.Lock()
		if seq != c.seq {
			// Superseded by a newer dispatch.
			c.mu.Unlock()
			return
		}

		c.state.Loading = false
		if err != nil {
			c.state.Error = err.Error()
			c.state.Results = nil
			c.state.Total = 0
			c.state.TotalPages = 0
			c.state.Breakdown = nil
			c.state.Message = ""
			c.notifyLocked()
			return
		}

		c.state.Error = ""
		c.state.Results = res.Results
		c.state.Total = res.Total
		c.state.TotalPages = res.TotalPages
		c.state.Breakdown = res.Breakdown
		c.state.Message = res.Message
		if res.Page > 0 {
			c.state.Page = res.Page
		}
		if res.Limit > 0 {
			c.state.Limit = res.Limit
		}
		c.notifyLocked()
	}()
}

// stopTimerLocked cancels a pending debounce, if any.
func (c *Controller[F]) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// notifyLocked snapshots state and fires the onChange callback outside
// the lock. Callers must hold c.mu; the lock is released on return.
func (c *Controller[F]) notifyLocked() {
	snapshot := c.state
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}

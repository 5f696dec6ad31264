package listx

import (
	"context"
	"errors"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/logx"
)

var (
	// ErrSuperseded is returned by a fetch whose result was discarded because a
	// newer reset started while it was in flight
	ErrSuperseded = errors.New("listx: result superseded by a newer query")
	// ErrItemNotFound is returned by item mutations for an id not in the list
	ErrItemNotFound = errors.New("listx: item not in list")
	// ErrItemBusy is returned when the same flag of an item is already being toggled
	ErrItemBusy = errors.New("listx: item has a pending toggle")
)

// Fetcher loads one page for a query
type Fetcher[T Item, F Filters[F]] func(ctx context.Context, q Query[F]) (*kernel.Paginated[T], error)

// Option configures a Controller
type Option[T Item, F Filters[F]] func(*Controller[T, F])

// WithPageSize sets the limit used when a query has none
func WithPageSize[T Item, F Filters[F]](size int) Option[T, F] {
	return func(c *Controller[T, F]) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithErrorHandler registers fn to be called once for every surfaced error
func WithErrorHandler[T Item, F Filters[F]](fn func(error)) Option[T, F] {
	return func(c *Controller[T, F]) {
		c.onError = fn
	}
}

// WithName labels the controller in log lines
func WithName[T Item, F Filters[F]](name string) Option[T, F] {
	return func(c *Controller[T, F]) {
		c.name = name
	}
}

// Controller owns the State of one list screen. All methods are safe for
// concurrent use; fetches run on the caller's goroutine and block until
// settled.
type Controller[T Item, F Filters[F]] struct {
	fetch    Fetcher[T, F]
	pageSize int
	name     string
	onError  func(error)

	mu      sync.Mutex
	state   State[T, F]
	pending map[string]struct{}
	subs    map[int]func(State[T, F])
	nextSub int
}

// New returns a controller in the Loading state, waiting for Initialize
func New[T Item, F Filters[F]](fetch Fetcher[T, F], opts ...Option[T, F]) *Controller[T, F] {
	c := &Controller[T, F]{
		fetch:    fetch,
		pageSize: kernel.DefaultPageSize,
		name:     "list",
		pending:  make(map[string]struct{}),
		subs:     make(map[int]func(State[T, F])),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.Status = StatusLoading
	c.state.Query = Query[F]{Page: 1, Limit: c.pageSize}
	return c
}

// Snapshot returns the current state. The Items slice must not be modified.
func (c *Controller[T, F]) Snapshot() State[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every new state and returns a function
// that removes it
func (c *Controller[T, F]) Subscribe(fn func(State[T, F])) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Initialize starts the list for q, on page one
func (c *Controller[T, F]) Initialize(ctx context.Context, q Query[F]) error {
	return c.reset(ctx, c.normalize(q))
}

// ApplyFilters merges f over the current filters and reloads from page one
func (c *Controller[T, F]) ApplyFilters(ctx context.Context, f F) error {
	c.mu.Lock()
	q := c.state.Query
	c.mu.Unlock()

	q.Filters = q.Filters.Merge(f)
	return c.reset(ctx, c.normalize(q))
}

// ReplaceFilters sets the filters to exactly f and reloads from page one.
// Unlike ApplyFilters it can unset a field.
func (c *Controller[T, F]) ReplaceFilters(ctx context.Context, f F) error {
	c.mu.Lock()
	q := c.state.Query
	c.mu.Unlock()

	q.Filters = f
	return c.reset(ctx, c.normalize(q))
}

// ClearFilters drops every filter and reloads from page one
func (c *Controller[T, F]) ClearFilters(ctx context.Context) error {
	return c.reset(ctx, Query[F]{Page: 1, Limit: c.pageSize})
}

// Refresh reloads page one of the current query, replacing the items
func (c *Controller[T, F]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	q := c.state.Query
	q.Page = 1
	if q.Limit <= 0 {
		q.Limit = c.pageSize
	}
	gen := c.apply(FetchStarted[T, F]{Mode: ModeRefresh, Query: q})
	c.mu.Unlock()
	c.notify()

	logx.Debugf("%s: refresh %v", c.name, q.Values())
	res, err := c.fetch(ctx, q)
	return c.settle(gen, ModeRefresh, res, err)
}

// LoadMore appends the next page. It is a no-op while any fetch is pending
// or when the last page has been loaded.
func (c *Controller[T, F]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.CanLoadMore() {
		c.mu.Unlock()
		return nil
	}
	q := c.state.Loaded
	q.Page++
	gen := c.apply(FetchStarted[T, F]{Mode: ModeMore, Query: q})
	c.mu.Unlock()
	c.notify()

	logx.Debugf("%s: load page %d", c.name, q.Page)
	res, err := c.fetch(ctx, q)
	return c.settle(gen, ModeMore, res, err)
}

// Toggle flips flag on the item immediately, then calls call with the new
// value. When call fails the flag is set back, unless a fetch replaced the
// item meanwhile, and the error is surfaced.
func (c *Controller[T, F]) Toggle(ctx context.Context, id string, flag Flag[T], call func(ctx context.Context, value bool) error) error {
	key := id + "/" + flag.Name

	c.mu.Lock()
	item, ok := c.state.Find(id)
	if !ok {
		c.mu.Unlock()
		return ErrItemNotFound
	}
	if _, busy := c.pending[key]; busy {
		c.mu.Unlock()
		return ErrItemBusy
	}
	c.pending[key] = struct{}{}
	before := flag.Get(item)
	gen := c.apply(ItemFlagSet[T, F]{ID: id, Flag: flag, Value: !before})
	c.mu.Unlock()
	c.notify()

	err := call(ctx, !before)

	c.mu.Lock()
	delete(c.pending, key)
	if err != nil {
		// Items fetched meanwhile are authoritative; keep their value.
		if cur, ok := c.state.Find(id); ok && gen == c.state.Generation && flag.Get(cur) == !before {
			c.apply(ItemFlagSet[T, F]{ID: id, Flag: flag, Value: before})
		}
		c.apply(ErrorRaised[T, F]{Err: err})
	}
	c.mu.Unlock()
	c.notify()

	if err != nil {
		logx.Warnf("%s: toggle %s on %s reverted: %v", c.name, flag.Name, id, err)
		c.surface(err)
	}
	return err
}

// Remove calls call and drops the item only once it succeeds
func (c *Controller[T, F]) Remove(ctx context.Context, id string, call func(ctx context.Context) error) error {
	if _, ok := c.Snapshot().Find(id); !ok {
		return ErrItemNotFound
	}

	if err := call(ctx); err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.apply(ItemRemoved[T, F]{ID: id})
	c.mu.Unlock()
	c.notify()
	return nil
}

// Update calls call with the current item and replaces it with the result
// once the call succeeds
func (c *Controller[T, F]) Update(ctx context.Context, id string, call func(ctx context.Context, current T) (T, error)) error {
	current, ok := c.Snapshot().Find(id)
	if !ok {
		return ErrItemNotFound
	}

	updated, err := call(ctx, current)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.apply(ItemReplaced[T, F]{Item: updated})
	c.mu.Unlock()
	c.notify()
	return nil
}

// DismissError clears the surfaced error
func (c *Controller[T, F]) DismissError() {
	c.mu.Lock()
	c.apply(ErrorDismissed[T, F]{})
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T, F]) normalize(q Query[F]) Query[F] {
	q.Page = 1
	if q.Limit <= 0 {
		q.Limit = c.pageSize
	}
	if q.Limit > kernel.MaxPageSize {
		q.Limit = kernel.MaxPageSize
	}
	return q
}

func (c *Controller[T, F]) reset(ctx context.Context, q Query[F]) error {
	c.mu.Lock()
	gen := c.apply(FetchStarted[T, F]{Mode: ModeReset, Query: q})
	c.mu.Unlock()
	c.notify()

	logx.Debugf("%s: load %v (generation %d)", c.name, q.Values(), gen)
	res, err := c.fetch(ctx, q)
	return c.settle(gen, ModeReset, res, err)
}

// settle applies a fetch outcome unless a newer reset has started
func (c *Controller[T, F]) settle(gen uint64, mode FetchMode, res *kernel.Paginated[T], err error) error {
	c.mu.Lock()
	if gen != c.state.Generation {
		c.mu.Unlock()
		logx.Debugf("%s: dropping result of generation %d", c.name, gen)
		return ErrSuperseded
	}
	if err != nil {
		c.apply(FetchFailed[T, F]{Generation: gen, Mode: mode, Err: err})
	} else {
		c.apply(FetchSucceeded[T, F]{Generation: gen, Mode: mode, Result: res})
	}
	c.mu.Unlock()
	c.notify()

	if err != nil {
		c.surface(err)
	}
	return err
}

func (c *Controller[T, F]) fail(err error) {
	c.mu.Lock()
	c.apply(ErrorRaised[T, F]{Err: err})
	c.mu.Unlock()
	c.notify()
	c.surface(err)
}

// apply reduces under c.mu and returns the resulting generation
func (c *Controller[T, F]) apply(a Action[T, F]) uint64 {
	c.state = Reduce(c.state, a)
	return c.state.Generation
}

func (c *Controller[T, F]) surface(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}

func (c *Controller[T, F]) notify() {
	c.mu.Lock()
	s := c.state
	subs := make([]func(State[T, F]), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

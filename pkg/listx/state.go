package listx

import (
	"slices"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Status is the fetch state of a controller. At most one fetch kind is
// active at a time.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusRefreshing
	StatusLoadingMore
	// StatusError is only reported by Phase, while an undismissed error is held
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusRefreshing:
		return "refreshing"
	case StatusLoadingMore:
		return "loading_more"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the collection owned by one controller
type State[T Item, F Filters[F]] struct {
	Items []T
	Query Query[F]
	// Loaded is the query Items were fetched under; Page is the last page
	// appended. Query runs ahead of it while a fetch is pending.
	Loaded     Query[F]
	Pagination kernel.Page
	Status     Status
	Err        error
	Generation uint64
}

func (s State[T, F]) IsLoading() bool     { return s.Status == StatusLoading }
func (s State[T, F]) IsRefreshing() bool  { return s.Status == StatusRefreshing }
func (s State[T, F]) IsLoadingMore() bool { return s.Status == StatusLoadingMore }

// Phase reports Status, or StatusError when idle with an undismissed error
func (s State[T, F]) Phase() Status {
	if s.Status == StatusIdle && s.Err != nil {
		return StatusError
	}
	return s.Status
}

// CanLoadMore reports whether LoadMore would issue a fetch
func (s State[T, F]) CanLoadMore() bool {
	return s.Status == StatusIdle && s.Pagination.Number < s.Pagination.Pages
}

// Find returns the item with id
func (s State[T, F]) Find(id string) (T, bool) {
	for _, it := range s.Items {
		if it.ItemID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Flag is a boolean field of T that can be toggled optimistically
type Flag[T any] struct {
	Name string
	Get  func(T) bool
	Set  func(T, bool) T
}

// FetchMode says how a fetch result is merged into the collection
type FetchMode int

const (
	// ModeReset replaces the items and starts a new generation (initialize, filters)
	ModeReset FetchMode = iota
	// ModeRefresh replaces the items with page one of the current query
	ModeRefresh
	// ModeMore appends the next page
	ModeMore
)

// Action is one state transition
type Action[T Item, F Filters[F]] interface {
	reduce(State[T, F]) State[T, F]
}

// Reduce applies a to s and returns the new state. s is not modified; slices
// are copied before being changed.
func Reduce[T Item, F Filters[F]](s State[T, F], a Action[T, F]) State[T, F] {
	return a.reduce(s)
}

// FetchStarted marks the beginning of a fetch for Query
type FetchStarted[T Item, F Filters[F]] struct {
	Mode  FetchMode
	Query Query[F]
}

func (a FetchStarted[T, F]) reduce(s State[T, F]) State[T, F] {
	s.Query = a.Query
	s.Err = nil
	switch a.Mode {
	case ModeReset:
		s.Generation++
		s.Status = StatusLoading
	case ModeRefresh:
		s.Generation++
		s.Status = StatusRefreshing
	case ModeMore:
		s.Status = StatusLoadingMore
	}
	return s
}

// FetchSucceeded applies a page fetched under Generation
type FetchSucceeded[T Item, F Filters[F]] struct {
	Generation uint64
	Mode       FetchMode
	Result     *kernel.Paginated[T]
}

func (a FetchSucceeded[T, F]) reduce(s State[T, F]) State[T, F] {
	if a.Generation != s.Generation {
		return s
	}

	var incoming []T
	if a.Result != nil {
		incoming = a.Result.Items
		s.Pagination = a.Result.Page
	}

	if a.Mode == ModeMore {
		s.Items = appendUnique(s.Items, incoming)
	} else {
		s.Items = appendUnique(nil, incoming)
	}
	if s.Pagination.Number == 0 {
		s.Pagination.Number = s.Query.Page
	}
	s.Loaded = s.Query
	s.Status = StatusIdle
	s.Err = nil
	return s
}

// FetchFailed records a failed fetch. Once a page has loaded, Query falls
// back to Loaded so that a later LoadMore continues the shown items and never
// mixes pages of two queries. Before that the failed query is kept for retry.
type FetchFailed[T Item, F Filters[F]] struct {
	Generation uint64
	Mode       FetchMode
	Err        error
}

func (a FetchFailed[T, F]) reduce(s State[T, F]) State[T, F] {
	if a.Generation != s.Generation {
		return s
	}
	if s.Loaded.Page > 0 {
		s.Query = s.Loaded
	}
	s.Status = StatusIdle
	s.Err = a.Err
	return s
}

// ItemFlagSet sets Flag of the item with ID to Value
type ItemFlagSet[T Item, F Filters[F]] struct {
	ID    string
	Flag  Flag[T]
	Value bool
}

func (a ItemFlagSet[T, F]) reduce(s State[T, F]) State[T, F] {
	idx := indexOf(s.Items, a.ID)
	if idx < 0 {
		return s
	}
	items := slices.Clone(s.Items)
	items[idx] = a.Flag.Set(items[idx], a.Value)
	s.Items = items
	return s
}

// ItemRemoved drops the item with ID and decrements the total
type ItemRemoved[T Item, F Filters[F]] struct {
	ID string
}

func (a ItemRemoved[T, F]) reduce(s State[T, F]) State[T, F] {
	idx := indexOf(s.Items, a.ID)
	if idx < 0 {
		return s
	}
	s.Items = slices.Delete(slices.Clone(s.Items), idx, idx+1)
	if s.Pagination.Total > 0 {
		s.Pagination.Total--
	}
	return s
}

// ItemReplaced swaps the item sharing Item's ID
type ItemReplaced[T Item, F Filters[F]] struct {
	Item T
}

func (a ItemReplaced[T, F]) reduce(s State[T, F]) State[T, F] {
	idx := indexOf(s.Items, a.Item.ItemID())
	if idx < 0 {
		return s
	}
	items := slices.Clone(s.Items)
	items[idx] = a.Item
	s.Items = items
	return s
}

// ErrorRaised surfaces a mutation failure
type ErrorRaised[T Item, F Filters[F]] struct {
	Err error
}

func (a ErrorRaised[T, F]) reduce(s State[T, F]) State[T, F] {
	s.Err = a.Err
	return s
}

// ErrorDismissed clears the surfaced error
type ErrorDismissed[T Item, F Filters[F]] struct{}

func (ErrorDismissed[T, F]) reduce(s State[T, F]) State[T, F] {
	s.Err = nil
	return s
}

func indexOf[T Item](items []T, id string) int {
	return slices.IndexFunc(items, func(it T) bool { return it.ItemID() == id })
}

// appendUnique appends incoming to base skipping ids already present,
// preserving first-seen order. base is never modified in place.
func appendUnique[T Item](base, incoming []T) []T {
	out := make([]T, 0, len(base)+len(incoming))
	seen := make(map[string]struct{}, len(base)+len(incoming))
	for _, list := range [][]T{base, incoming} {
		for _, it := range list {
			id := it.ItemID()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}

// Package listx keeps a paginated, filterable, mutable collection in sync
// with a remote list endpoint.
//
// A Controller owns one State. Every transition goes through the pure Reduce
// function; the controller only issues fetches and dispatches actions. Each
// reset (initialize, apply filters, clear filters, refresh) bumps a
// generation counter and results tagged with an older generation are
// dropped, so a response computed for a superseded query is never applied.
package listx

import (
	"net/url"
	"strconv"
)

// Item is anything with a stable identifier
type Item interface {
	ItemID() string
}

// Filters is the filter part of a query. Merge returns the receiver with every
// field set in other overriding it. Encode writes the set fields as query
// parameters.
type Filters[F any] interface {
	Merge(other F) F
	Encode(v url.Values)
}

// Query is the full list request: page, page size and filters
type Query[F Filters[F]] struct {
	Page    int
	Limit   int
	Filters F
}

// Values encodes the query as URL parameters
func (q Query[F]) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	q.Filters.Encode(v)
	return v
}

// SetString sets key when value is not empty
func SetString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// SetBool sets key when value is not nil
func SetBool(v url.Values, key string, value *bool) {
	if value != nil {
		v.Set(key, strconv.FormatBool(*value))
	}
}

// SetFloat sets key when value is not nil
func SetFloat(v url.Values, key string, value *float64) {
	if value != nil {
		v.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

// Pick returns override when it is not the zero value, otherwise base
func Pick[V comparable](base, override V) V {
	var zero V
	if override != zero {
		return override
	}
	return base
}

// PickPtr returns override when it is not nil, otherwise base
func PickPtr[V any](base, override *V) *V {
	if override != nil {
		return override
	}
	return base
}

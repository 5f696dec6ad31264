package kernel

import (
	"bytes"
	"encoding/json"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationOptions is the page request sent to list endpoints
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps the options to valid values
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset returns the zero based index of the first item of the page
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the pagination metadata of a list response
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// HasNext reports whether a page after Number exists
func (p Page) HasNext() bool {
	return p.Number < p.Pages
}

// TotalPages computes the page count for total items split in pages of size
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginated is one page of a list endpoint
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a page from its items and the total item count
func NewPaginated[T any](items []T, opts PaginationOptions, total int) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  TotalPages(total, opts.PageSize),
		},
		Empty: len(items) == 0,
	}
}

// SetPage replaces the pagination metadata, as sent in an envelope's meta
func (p *Paginated[T]) SetPage(meta Page) {
	p.Page = meta
	p.Empty = len(p.Items) == 0
}

// UnmarshalJSON accepts the paginated object or a bare item array. The
// array form gets its metadata through SetPage.
func (p *Paginated[T]) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Paginated[T]{Items: items, Empty: len(items) == 0}
		return nil
	}
	type plain Paginated[T]
	return json.Unmarshal(data, (*plain)(p))
}

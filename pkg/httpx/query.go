package httpx

import (
	"net/url"
	"strconv"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// PageQuery encodes pagination as the page and limit parameters of list
// endpoints
func PageQuery(page kernel.PaginationOptions) url.Values {
	page = page.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(page.Page))
	v.Set("limit", strconv.Itoa(page.PageSize))
	return v
}

// Path joins escaped segments onto a route prefix, as in
// Path("/api/jobs", id, "save")
func Path(prefix string, segments ...string) string {
	out := prefix
	for _, s := range segments {
		out += "/" + url.PathEscape(s)
	}
	return out
}

package web

import (
	"net/url"
	"strconv"

	"github.com/gikcare/frontdesk/internal/listview"
)

// pager is the pagination control's view model: position plus the query
// strings for the neighboring pages, with search filters preserved.
type pager struct {
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevQuery  string
	NextQuery  string
}

func newPager[T any](page listview.Page[T], query url.Values) pager {
	return pager{
		Number:     page.Number,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
		PrevQuery:  withPage(query, page.Number-1),
		NextQuery:  withPage(query, page.Number+1),
	}
}

func withPage(query url.Values, page int) string {
	q := url.Values{}
	for k, vs := range query {
		if k == "page" || k == "edit" {
			continue
		}
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	return q.Encode()
}

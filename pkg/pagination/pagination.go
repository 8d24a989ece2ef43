package pagination

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/tair/storefront/pkg/httperr"
)

// Page is the envelope returned by every paginated list endpoint.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Request captures the resolved pagination window for one request.
type Request struct {
	Page     int
	PageSize int
}

func (p Request) Limit() int {
	return p.PageSize
}

func (p Request) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Parse reads the "page" query parameter. Page numbers start at 1; a
// malformed or non-positive value is a validation error.
func Parse(r *http.Request, pageSize int) (Request, error) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Request{}, httperr.Validation("invalid page")
		}
		page = n
	}
	return Request{Page: page, PageSize: pageSize}, nil
}

// Validate rejects page numbers past the end of the result set.
func (p Request) Validate(count int64) error {
	if p.Page > 1 && int64(p.Offset()) >= count {
		return httperr.NotFound("invalid page")
	}
	return nil
}

// NewPage assembles the response envelope, rewriting the request URL to
// produce next/previous links.
func NewPage(r *http.Request, p Request, count int64, results interface{}) Page {
	page := Page{Count: count, Results: results}
	if int64(p.Page*p.PageSize) < count {
		page.Next = pageLink(r, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageLink(r, p.Page-1)
	}
	return page
}

func pageLink(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	link := absolute(r, &u)
	return &link
}

func absolute(r *http.Request, u *url.URL) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	out := *u
	out.Scheme = scheme
	out.Host = r.Host
	return out.String()
}

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/storefront/pkg/httperr"
)

func TestParseDefaultsToFirstPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/product", nil)

	p, err := Parse(r, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 0, p.Offset())
}

func TestParseReadsPageParameter(t *testing.T) {
	r := httptest.NewRequest("GET", "/product?page=3", nil)

	p, err := Parse(r, 10)
	assert.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Offset())
}

func TestParseRejectsMalformedPage(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1"} {
		r := httptest.NewRequest("GET", "/product?page="+raw, nil)

		_, err := Parse(r, 10)
		assert.Error(t, err)
		assert.Equal(t, httperr.KindValidation, httperr.From(err).Kind)
	}
}

func TestValidateRejectsPagePastEnd(t *testing.T) {
	r := httptest.NewRequest("GET", "/product?page=4", nil)

	p, err := Parse(r, 10)
	assert.NoError(t, err)

	err = p.Validate(25)
	assert.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.From(err).Kind)

	assert.NoError(t, Request{Page: 3, PageSize: 10}.Validate(25))
	assert.NoError(t, Request{Page: 1, PageSize: 10}.Validate(0))
}

func TestNewPageLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/product?page=2", nil)

	p := Request{Page: 2, PageSize: 10}
	page := NewPage(r, p, 25, []int{})

	assert.Equal(t, int64(25), page.Count)
	assert.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/product?page=3", *page.Next)
	assert.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/product", *page.Previous)
}

func TestNewPageNoLinksOnSinglePage(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/category", nil)

	page := NewPage(r, Request{Page: 1, PageSize: 10}, 5, []int{})
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}

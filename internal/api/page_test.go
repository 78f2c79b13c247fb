package api

import (
	"math"
	"net/http"
	"strconv"
	"testing"

	"portfolio-api/internal/store"

	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/?q=go")
	p, err := ParsePage(c)
	require.NoError(t, err)
	require.Equal(t, Page{Page: 1, Limit: DefaultLimit, Query: "go"}, p)
	require.Equal(t, store.ListParams{Limit: 20, Offset: 0, Query: "go"}, p.Params())

	c, _ = newCtx(http.MethodGet, "/?page=3&limit=500")
	p, err = ParsePage(c)
	require.NoError(t, err)
	require.Equal(t, MaxLimit, p.Limit)
	require.Equal(t, 200, p.Params().Offset)

	c, _ = newCtx(http.MethodGet, "/?limit=100&page="+strconv.Itoa(maxPage))
	p, err = ParsePage(c)
	require.NoError(t, err)
	require.Positive(t, p.Params().Offset)

	huge := "page=" + strconv.Itoa(math.MaxInt)
	for _, q := range []string{"page=0", "page=x", "limit=-1", "limit=abc", huge, huge + "&limit=20"} {
		c, _ = newCtx(http.MethodGet, "/?"+q)
		_, err = ParsePage(c)
		require.Error(t, err, q)
	}
}

func TestNewList(t *testing.T) {
	var none []int
	l := NewList(none, Page{Page: 2, Limit: 10}, 0)
	require.Equal(t, []int{}, l.Items)
	require.Equal(t, 2, l.Page)

	l = NewList([]string{"a"}, Page{Page: 1, Limit: 10}, 11)
	require.Equal(t, 11, l.Total)
	require.Equal(t, []int{}, Empty[int](nil))
}

func TestParseID(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("7")
	id, err := ParseID(c, "id")
	require.NoError(t, err)
	require.Equal(t, 7, id)

	c.SetParamValues("0")
	_, err = ParseID(c, "id")
	require.EqualError(t, err, "invalid id")

	c.SetParamValues("abc")
	_, err = ParseID(c, "id")
	require.Error(t, err)
}

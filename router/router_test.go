package router

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/vtree/vdom"
)

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		pattern, path string
		want          bool
	}{
		{"/", "/", true},
		{"/", "", true},
		{"/about", "/about/", true},
		{"/blog/{year}", "/blog/2024", true},
		{"/blog/{year}", "/blog", false},
		{"/blog/{year}", "/blog/2024/extra", false},
		{"/blog/{year}/{slug}", "/blog/2024/hello", true},
		{"/blog/{year}", "/news/2024", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesPattern(tt.pattern, tt.path))
		})
	}
}

func TestMatchExtractsParams(t *testing.T) {
	// Arrange
	table := New()
	table.Handle("/", func(map[string]string) *vdom.Node { return vdom.Text("home") })
	table.Handle("/blog/{year}/{slug}", func(p map[string]string) *vdom.Node { return vdom.Text(p["slug"]) })

	// Act
	route, params, err := table.Match("/blog/2024/hello/")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/blog/{year}/{slug}", route.Path)
	assert.Equal(t, map[string]string{"year": "2024", "slug": "hello"}, params)
}

func TestFirstRegisteredRouteWins(t *testing.T) {
	table := New(
		Route{Path: "/blog/latest", Page: func(map[string]string) *vdom.Node { return vdom.Text("latest") }},
		Route{Path: "/blog/{year}", Page: func(map[string]string) *vdom.Node { return vdom.Text("year") }},
	)

	page, err := table.Resolve("/blog/latest")

	require.NoError(t, err)
	assert.Equal(t, "latest", page.Text())
}

func TestHandleIf_RejectedParamsFallThrough(t *testing.T) {
	// Arrange
	table := New()
	numeric := func(p map[string]string) bool {
		_, err := strconv.Atoi(p["year"])
		return err == nil
	}
	table.HandleIf("/blog/{year}", numeric, func(p map[string]string) *vdom.Node { return vdom.Text(p["year"]) })
	table.Handle("/blog/{slug}", func(p map[string]string) *vdom.Node { return vdom.Text("post " + p["slug"]) })

	// Act
	_, _, errYear := table.Match("/blog/2024")
	page, err := table.Resolve("/blog/hello")

	// Assert
	require.NoError(t, errYear)
	require.NoError(t, err)
	assert.Equal(t, "post hello", page.Text())

	_, _, err = New(Route{Path: "/blog/{year}", Accept: numeric}).Match("/blog/abc")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestResolveFallsBackToNotFound(t *testing.T) {
	table := New()
	_, err := table.Resolve("/missing")
	assert.True(t, errors.Is(err, ErrNoRoute), "Expected ErrNoRoute, got %v", err)

	table.HandleNotFound(func(p map[string]string) *vdom.Node { return vdom.Text("no " + p["path"]) })
	page, err := table.Resolve("/missing")
	require.NoError(t, err)
	assert.Equal(t, "no /missing", page.Text())
}

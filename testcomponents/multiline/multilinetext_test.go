package multiline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/vtree/dom"
	"github.com/vcrobe/vtree/ssr"
	"github.com/vcrobe/vtree/testcomponents"
	"github.com/vcrobe/vtree/vdom"
)

const message = "first line\nsecond <line>\n\tthird line"

func TestMultilineText_PreservesLineBreaks(t *testing.T) {
	renderer := testcomponents.NewTestRenderer()
	renderer.Mount(&MultilineText{Title: "Notes", Message: message, Count: 2})

	got, err := renderer.Text("section.multiline > pre")
	require.NoError(t, err)
	assert.Equal(t, message, got)

	section, err := renderer.Query("section.multiline")
	require.NoError(t, err)
	count, ok := dom.Attr(section, "data-count")
	assert.True(t, ok)
	assert.Equal(t, "2", count)
}

func TestMultilineText_ServerMarkupEscapesText(t *testing.T) {
	comp := &MultilineText{Title: "Notes", Message: message}
	class := vdom.NewClass("MultilineText", func(any) vdom.Component { return comp })

	markup := ssr.RenderToString(vdom.Class(class, nil), nil)

	assert.True(t, strings.Contains(markup, "second &lt;line&gt;\n\tthird line"), markup)
	assert.True(t, strings.HasPrefix(markup, `<section class="multiline" data-count="0">`), markup)
}


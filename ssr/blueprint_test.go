package ssr

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/vtree/vdom"
)

func list(keys ...string) *vdom.Node {
	items := make([]*vdom.Node, len(keys))
	for i, k := range keys {
		items[i] = vdom.H("li").Key(k).Children(k)
	}
	return vdom.H("ul").Children(items)
}

func themeConnect(renders *int) *vdom.ConnectDescriptor {
	return &vdom.ConnectDescriptor{
		Name: "theme",
		Select: func(prev *vdom.SelectorData, _ any, ctx vdom.Context) *vdom.SelectorData {
			if prev != nil && prev.Out == ctx["theme"] {
				return prev
			}
			return &vdom.SelectorData{In: ctx, Out: ctx["theme"]}
		},
		Render: func(out any) *vdom.Node {
			*renders++
			return vdom.H("em").Children(out)
		},
	}
}

func TestSerialize_Markup(t *testing.T) {
	n := vdom.H("form", "login").
		Props(vdom.Attrs{"id": "f", "novalidate": true, "hidden": false, "data-x": nil, "tabindex": 2}).
		Style(vdom.Style{"margin": "0", "color": "red"}).
		Children(
			vdom.InputText(`a"b`).Autofocus(true),
			vdom.Input("checkbox").Checked(true),
			vdom.TextArea().Value("x < y"),
			vdom.H("br"),
			vdom.H("p").Children("1 & 2"),
			vdom.H("div").UnsafeHTML("<b>raw</b>"),
			vdom.Stateless(vdom.NewStateless("empty", func(any) *vdom.Node { return nil }), nil),
		)

	got := RenderToString(n, nil)

	expected := `<form class="login" id="f" novalidate tabindex="2" style="color:red;margin:0">` +
		`<input type="text" value="a&#34;b" autofocus>` +
		`<input type="checkbox" checked>` +
		`<textarea>x &lt; y</textarea>` +
		`<br>` +
		`<p>1 &amp; 2</p>` +
		`<div><b>raw</b></div>` +
		`</form>`
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestSerialize_SVG(t *testing.T) {
	n := vdom.S("svg").Props(vdom.Attrs{"viewBox": "0 0 10 10"}).Children(vdom.S("circle").Props(vdom.Attrs{"r": 4.5}))

	assert.Equal(t, `<svg viewBox="0 0 10 10"><circle r="4.5"></circle></svg>`, RenderToString(n, nil))
}

func TestBlueprint_UnchangedTreeIsReused(t *testing.T) {
	// Arrange
	r := NewRenderer(nil)
	first := r.CreateBlueprint(list("a", "b", "c"), nil, nil)
	markup := r.Serialize(first)
	r.ResetStats()

	// Act
	second := r.CreateBlueprint(list("a", "b", "c"), nil, first)
	again := r.Serialize(second)

	// Assert
	assert.Same(t, first, second)
	assert.Equal(t, markup, again)
	if diff := cmp.Diff(Stats{}, r.Stats()); diff != "" {
		t.Errorf("Expected no serialization work (-want +got):\n%s", diff)
	}
}

func TestBlueprint_ChangedLeafRebuildsItsPath(t *testing.T) {
	// Arrange
	r := NewRenderer(nil)
	first := r.CreateBlueprint(list("a", "b", "c"), nil, nil)
	r.Serialize(first)
	r.ResetStats()

	// Act
	next := vdom.H("ul").Children([]*vdom.Node{
		vdom.H("li").Key("a").Children("a"),
		vdom.H("li").Key("b").Children("B"),
		vdom.H("li").Key("c").Children("c"),
	})
	second := r.CreateBlueprint(next, nil, first)
	markup := r.Serialize(second)

	// Assert
	assert.Equal(t, "<ul><li>a</li><li>B</li><li>c</li></ul>", markup)
	assert.Same(t, first.Children()[0], second.Children()[0])
	assert.Same(t, first.Children()[2], second.Children()[2])
	if diff := cmp.Diff(Stats{Serialized: 2, Escapes: 1}, r.Stats()); diff != "" {
		t.Errorf("Unexpected stats (-want +got):\n%s", diff)
	}
}

func TestBlueprint_AppendedAndRemovedChildren(t *testing.T) {
	r := NewRenderer(nil)
	first := r.CreateBlueprint(list("a", "b"), nil, nil)
	r.Serialize(first)

	appended := r.CreateBlueprint(list("a", "b", "c"), nil, first)
	removed := r.CreateBlueprint(list("a"), nil, appended)

	assert.Equal(t, "<ul><li>a</li><li>b</li><li>c</li></ul>", r.Serialize(appended))
	assert.Equal(t, "<ul><li>a</li></ul>", r.Serialize(removed))
	assert.Same(t, first.Children()[0], removed.Children()[0])
}

func TestBlueprint_ReorderKeepsFrozenChildren(t *testing.T) {
	r := NewRenderer(nil)
	first := r.CreateBlueprint(list("a", "b", "c"), nil, nil)
	r.Serialize(first)
	r.ResetStats()

	second := r.CreateBlueprint(list("c", "a", "b"), nil, first)

	assert.Equal(t, "<ul><li>c</li><li>a</li><li>b</li></ul>", r.Serialize(second))
	assert.Equal(t, 1, r.Stats().Serialized)
	assert.Same(t, first.Children()[2], second.Children()[0])
}

func TestBlueprint_ShapeChange(t *testing.T) {
	r := NewRenderer(nil)
	first := r.CreateBlueprint(vdom.H("p").Children(vdom.H("b"), vdom.H("i")), nil, nil)
	r.Serialize(first)

	text := r.CreateBlueprint(vdom.H("p").Children("plain"), nil, first)
	single := r.CreateBlueprint(vdom.H("p").Children(vdom.H("i").Key(1)), nil, first)

	assert.Equal(t, "<p>plain</p>", r.Serialize(text))
	assert.Empty(t, text.Children())
	assert.Equal(t, "<p><i></i></p>", r.Serialize(single))
}

func TestBlueprint_DeepConnectRevisit(t *testing.T) {
	// Arrange
	renders := 0
	conn := themeConnect(&renders)
	static := vdom.H("div").Children(
		vdom.H("h1").Children("title"),
		vdom.H("section").Children(vdom.Connect(conn, nil)),
	)
	r := NewRenderer(nil)
	first := r.CreateBlueprint(static, vdom.Context{"theme": "light"}, nil)
	r.Serialize(first)
	require.True(t, first.DeepConnect())
	require.False(t, first.Children()[0].DeepConnect())

	// Act
	same := r.CreateBlueprint(static, vdom.Context{"theme": "light"}, first)
	r.ResetStats()
	dark := r.CreateBlueprint(static, vdom.Context{"theme": "dark"}, same)
	markup := r.Serialize(dark)

	// Assert
	assert.Same(t, first, same)
	assert.Equal(t, 2, renders)
	assert.Equal(t, "<div><h1>title</h1><section><em>dark</em></section></div>", markup)
	assert.Same(t, first.Children()[0], dark.Children()[0])
	assert.Equal(t, 4, r.Stats().Serialized, "em, connect, section and div")
}

func TestBlueprint_ContextOverride(t *testing.T) {
	renders := 0
	conn := themeConnect(&renders)
	n := vdom.H("div").Children(
		vdom.Connect(conn, nil),
		vdom.UpdateContext(vdom.Context{"theme": "blue"}, vdom.Connect(conn, nil)),
	)

	got := RenderToString(n, vdom.Context{"theme": "light"})

	assert.Equal(t, "<div><em>light</em><em>blue</em></div>", got)
}

type greeter struct {
	name    string
	renders *int
}

func (g *greeter) Render() *vdom.Node {
	*g.renders++
	return vdom.H("span").Children("hello " + g.name)
}

func TestBlueprint_ComponentProps(t *testing.T) {
	// Arrange
	renders := 0
	class := vdom.NewClass("greeter", func(props any) vdom.Component {
		return &greeter{name: props.(string), renders: &renders}
	})
	r := NewRenderer(nil)
	first := r.CreateBlueprint(vdom.Class(class, "ann"), nil, nil)
	r.Serialize(first)

	// Act
	same := r.CreateBlueprint(vdom.Class(class, "ann"), nil, first)
	changed := r.CreateBlueprint(vdom.Class(class, "bob"), nil, same)

	// Assert
	assert.Same(t, first, same)
	assert.Equal(t, 2, renders)
	assert.Equal(t, "<span>hello bob</span>", r.Serialize(changed))
	_, ok := changed.Data().(*greeter)
	assert.True(t, ok)
}

func TestDumpBlueprint(t *testing.T) {
	renders := 0
	r := NewRenderer(nil)
	b := r.CreateBlueprint(vdom.H("div").Children(vdom.H("h1").Children("t"), vdom.Connect(themeConnect(&renders), nil)), vdom.Context{"theme": "x"}, nil)
	before := DumpBlueprint(b)
	r.Serialize(b)

	out := DumpBlueprint(b)

	assert.Contains(t, before, "<div> +")
	assert.NotContains(t, before, "*")
	assert.Contains(t, out, "<div> * +")
	assert.Contains(t, out, `<h1> "t" *`)
	assert.Contains(t, out, "connect theme * +")
	assert.True(t, strings.Count(out, "*") >= 4)
}

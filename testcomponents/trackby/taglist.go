// Package trackby holds list components whose items are keyed so that the
// reconciler moves existing elements instead of rebuilding them.
package trackby

import (
	"fmt"

	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// TagList renders a list of strings keyed by the tag itself.
type TagList struct {
	runtime.ComponentBase
	Tags []string
}

func (t *TagList) OnInit() {
	if t.Tags == nil {
		t.Tags = []string{"golang", "wasm", "component", "framework"}
	}
}

func (t *TagList) Render() *vdom.Node {
	items := make([]*vdom.Node, len(t.Tags))
	for i, tag := range t.Tags {
		items[i] = vdom.H("li").Key(tag).Children(fmt.Sprintf("Tag %d: %s", i, tag))
	}
	return vdom.Div("tag-list",
		vdom.H("h3").Children("Tags"),
		vdom.H("ul").Children(items),
	)
}

func (t *TagList) AddTag(newTag string) {
	t.Tags = append(t.Tags, newTag)
	t.StateHasChanged()
}

// MoveToFront moves the tag at index i to the front of the list.
func (t *TagList) MoveToFront(i int) {
	tag := t.Tags[i]
	t.Tags = append([]string{tag}, append(t.Tags[:i:i], t.Tags[i+1:]...)...)
	t.StateHasChanged()
}

func (t *TagList) ClearTags() {
	t.Tags = []string{}
	t.StateHasChanged()
}

package trackby

import (
	"fmt"

	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// Item represents a data item with ID for keyed rendering.
type Item struct {
	ID   int
	Name string
}

// MultiItemList renders two sibling elements per item. Both carry keys
// derived from the item ID.
type MultiItemList struct {
	runtime.ComponentBase
	Items []Item
}

func (m *MultiItemList) OnInit() {
	if m.Items == nil {
		m.Items = []Item{
			{ID: 101, Name: "Alpha"},
			{ID: 102, Name: "Beta"},
			{ID: 103, Name: "Gamma"},
		}
	}
}

func (m *MultiItemList) Render() *vdom.Node {
	entries := make([]*vdom.Node, 0, 2*len(m.Items))
	for _, item := range m.Items {
		entries = append(entries,
			vdom.H("dt").Key(fmt.Sprintf("dt-%d", item.ID)).Children(item.Name),
			vdom.H("dd").Key(fmt.Sprintf("dd-%d", item.ID)).Children(fmt.Sprintf("ID: %d", item.ID)),
		)
	}
	return vdom.Div("multi-item-list",
		vdom.H("dl").Children(entries),
		vdom.Paragraph(fmt.Sprintf("%d items", len(m.Items))),
	)
}

func (m *MultiItemList) AddItem(name string) {
	newID := 100 + len(m.Items) + 1
	m.Items = append(m.Items, Item{
		ID:   newID,
		Name: name,
	})
	m.StateHasChanged()
}

// RemoveItem removes the item with the given ID.
func (m *MultiItemList) RemoveItem(id int) {
	kept := m.Items[:0:0]
	for _, item := range m.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.Items = kept
	m.StateHasChanged()
}

func (m *MultiItemList) ClearItems() {
	m.Items = []Item{}
	m.StateHasChanged()
}

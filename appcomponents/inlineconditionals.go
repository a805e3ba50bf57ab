package appcomponents

import (
	"strings"

	"github.com/vcrobe/vtree/vdom"
)

// Conditions are the props of InlineConditionals.
type Conditions struct {
	HasError   bool
	IsSaving   bool
	IsReady    bool
	IsActive   bool
	IsLarge    bool
	IsLocked   bool
	IsRequired bool
}

// InlineConditionals renders classes, attributes and text chosen from
// boolean props.
var InlineConditionals = &vdom.StatelessComponent{
	Name: "InlineConditionals",
	Render: func(props any) *vdom.Node {
		c, _ := props.(Conditions)
		status := "Idle"
		switch {
		case c.HasError:
			status = "Error"
		case c.IsSaving:
			status = "Saving..."
		case c.IsReady:
			status = "Ready"
		}
		input := vdom.InputText("").Props(vdom.Attrs{
			"disabled": c.IsLocked,
			"required": c.IsRequired,
		})
		class := []string{"conditionals"}
		if c.HasError {
			class = append(class, "error")
		}
		if c.IsActive {
			class = append(class, "active")
		}
		if c.IsLarge {
			class = append(class, "large")
		}
		return vdom.H("div", strings.Join(class, " ")).Children(
			vdom.H("span", "status").Children(status),
			input,
		)
	},
	PropsChanged: func(oldProps, newProps any) bool {
		return oldProps != newProps
	},
}


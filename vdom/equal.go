package vdom

import (
	"maps"
	"reflect"
)

// SameValue reports whether a and b are the same value by identity: equal
// comparable values, or the same map, slice, pointer, channel or function.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return comparableEqual(a, b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

// comparableEqual compares values whose static type is comparable. Structs
// holding uncomparable dynamic values make == panic; those are unequal.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// EqualKeys reports whether two nodes carry the same key.
func EqualKeys(a, b *Node) bool {
	return a.hasKey == b.hasKey && SameValue(a.key, b.key)
}

// Compatible reports whether b can update the instance built for a: same
// kind, same tag or component type, and the same key.
func Compatible(a, b *Node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindElement:
		if a.tag != b.tag || a.svg != b.svg || a.inputType != b.inputType {
			return false
		}
	case KindText:
	default:
		if a.typ != b.typ {
			return false
		}
	}
	return EqualKeys(a, b)
}

func sameAttrs(a, b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !SameValue(va, vb) {
			return false
		}
	}
	return true
}

func sameStyle(a, b Style) bool {
	return maps.Equal(a, b)
}

// SameContent reports whether two element nodes have the same attributes,
// class, style and non-node children content.
func SameContent(a, b *Node) bool {
	if a.className != b.className || !sameAttrs(a.attrs, b.attrs) || !sameStyle(a.style, b.style) {
		return false
	}
	if a.shape.HasNodes() || b.shape.HasNodes() {
		return a.shape.HasNodes() && b.shape.HasNodes()
	}
	return a.shape == b.shape && a.text == b.text && a.checked == b.checked
}

// PropsChanged reports whether comp must re-render for newProps.
func PropsChanged(comp Component, oldProps, newProps any) bool {
	if pc, ok := comp.(PropsChecker); ok {
		return pc.IsPropsChanged(oldProps, newProps)
	}
	return !SameValue(oldProps, newProps)
}

// Changed reports whether the component must re-render for newProps.
func (s *StatelessComponent) Changed(oldProps, newProps any) bool {
	if s.PropsChanged != nil {
		return s.PropsChanged(oldProps, newProps)
	}
	return !SameValue(oldProps, newProps)
}

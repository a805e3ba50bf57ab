package vdom

import (
	"fmt"
	"strconv"
)

// normalizeChildren converts the arguments of Node.Children into a children
// slot. Accepted arguments are *Node, []*Node, strings, numbers and nil.
// Unkeyed nodes get their argument index as key, and a single unkeyed child
// gets key 0; nodes inside nested slices must carry explicit keys.
func normalizeChildren(args []any) (ChildrenShape, []*Node, string) {
	if len(args) == 1 {
		return normalizeSingle(args[0])
	}

	var (
		count   int
		entries int
		last    any
	)
	for _, arg := range args {
		switch c := arg.(type) {
		case nil:
		case *Node:
			if c != nil {
				count++
				entries++
				last = c
			}
		case []*Node:
			if len(c) > 0 {
				count += len(c)
				entries++
				last = c
			}
		default:
			if _, ok := basicText(c); ok {
				count++
				entries++
				last = c
			} else if devChecks {
				fail("children", fmt.Sprintf("unsupported child type %T", c))
			}
		}
	}
	if entries == 0 {
		return NoChildren, nil, ""
	}
	if entries == 1 && count == 1 {
		return normalizeSingle(last)
	}

	nodes := make([]*Node, 0, count)
	for i, arg := range args {
		switch c := arg.(type) {
		case nil:
		case *Node:
			if c == nil {
				continue
			}
			if !c.hasKey {
				c.key = i
			}
			nodes = append(nodes, c)
		case []*Node:
			for _, n := range c {
				if n == nil {
					continue
				}
				if devChecks && !n.hasKey {
					fail("children", "nodes in nested slices must have explicit keys")
				}
				nodes = append(nodes, n)
			}
		default:
			if s, ok := basicText(c); ok {
				t := Text(s)
				t.key = i
				nodes = append(nodes, t)
			}
		}
	}
	if devChecks {
		checkUniqueKeys(nodes)
	}
	return ChildrenArray, nodes, ""
}

func normalizeSingle(arg any) (ChildrenShape, []*Node, string) {
	switch c := arg.(type) {
	case nil:
		return NoChildren, nil, ""
	case *Node:
		if c == nil {
			return NoChildren, nil, ""
		}
		if !c.hasKey {
			c.key = 0
		}
		return ChildrenNode, []*Node{c}, ""
	case []*Node:
		nodes := make([]*Node, 0, len(c))
		for _, n := range c {
			if n != nil {
				nodes = append(nodes, n)
			}
		}
		switch len(nodes) {
		case 0:
			return NoChildren, nil, ""
		case 1:
			if !nodes[0].hasKey {
				nodes[0].key = 0
			}
			return ChildrenNode, nodes, ""
		}
		for i, n := range nodes {
			if !n.hasKey {
				n.key = i
			}
		}
		if devChecks {
			checkUniqueKeys(nodes)
		}
		return ChildrenArray, nodes, ""
	}
	if s, ok := basicText(arg); ok {
		return ChildrenText, nil, s
	}
	if devChecks {
		fail("children", fmt.Sprintf("unsupported child type %T", arg))
	}
	return NoChildren, nil, ""
}

func basicText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int8:
		return strconv.FormatInt(int64(t), 10), true
	case int16:
		return strconv.FormatInt(int64(t), 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

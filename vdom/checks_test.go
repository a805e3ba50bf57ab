//go:build !prod

package vdom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcrobe/vtree/console"
)

func assertBuildError(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Expected a BuildError panic for %s, got %v", op, r)
		}
		var be *BuildError
		if !errors.As(err, &be) {
			t.Fatalf("Expected a BuildError, got %v", err)
		}
		assert.Equal(t, op, be.Op)
	}()
	fn()
}

func TestChecks_Children(t *testing.T) {
	assertBuildError(t, "children", func() { Input("text").Children("x") })
	assertBuildError(t, "children", func() { H("br").Children("x") })
	assertBuildError(t, "children", func() { Media("audio").Children("x") })
	assertBuildError(t, "children", func() { H("div").Children("a").Children("b") })
	assertBuildError(t, "children", func() { Text("a").Children("b") })
	assertBuildError(t, "children", func() { H("div").Children(struct{}{}) })
	assertBuildError(t, "children", func() { H("div").Children("a", struct{}{}) })
}

func TestChecks_Keys(t *testing.T) {
	assertBuildError(t, "key", func() { H("li").Key([]int{1}) })
	assertBuildError(t, "children", func() {
		H("ul").Children([]*Node{H("li").Key(1), H("li").Key(1)})
	})
	assertBuildError(t, "children", func() {
		H("ul").Children(H("li"), []*Node{H("li")})
	})
}

func TestChecks_Inputs(t *testing.T) {
	assertBuildError(t, "value", func() { H("div").Value("x") })
	assertBuildError(t, "checked", func() { Input("text").Checked(true) })
	assertBuildError(t, "className", func() { Text("a").ClassName("x") })
	assertBuildError(t, "events", func() { Stateless(NewStateless("s", nil), nil).Events() })
}

func TestChecks_AttrsOnlyWarn(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.WarnLevel)
	console.SetLoggerForTest(zap.New(core))
	t.Cleanup(console.ResetForTest)

	// Act
	var n *Node
	assert.NotPanics(t, func() {
		n = H("div").Props(Attrs{"class": "x", "style": "y", "onclick": "z"})
	})

	// Assert
	assert.Len(t, n.Attrs(), 3)
	assert.Equal(t, 3, logs.Len())
}

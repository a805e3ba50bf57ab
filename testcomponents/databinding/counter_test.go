package databinding

import (
	"fmt"
	"testing"

	"github.com/vcrobe/vtree/testcomponents"
)

func paragraphs(t *testing.T, r *testcomponents.TestRenderer) []string {
	t.Helper()
	nodes, err := r.Document().QueryAll("div.counter > p")
	if err != nil {
		t.Fatalf("Unexpected query error: %v", err)
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		if n.FirstChild != nil {
			texts[i] = n.FirstChild.Data
		}
	}
	return texts
}

// TestDataBinding_InitialRender verifies that data binding correctly
// interpolates component state into the document on the initial render.
func TestDataBinding_InitialRender(t *testing.T) {
	// Arrange: Create a counter component with initial state
	counter := &Counter{
		Count: 5,
		Label: "Test Counter",
	}
	renderer := testcomponents.NewTestRenderer()

	// Act: Perform initial render
	renderer.Mount(counter)

	// Assert: Verify the root structure
	texts := paragraphs(t, renderer)
	if len(texts) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(texts))
	}
	if texts[0] != "Count: 5" {
		t.Errorf("Expected content 'Count: 5', got '%s'", texts[0])
	}
	if texts[1] != "Label: Test Counter" {
		t.Errorf("Expected content 'Label: Test Counter', got '%s'", texts[1])
	}
}

// TestDataBinding_StateUpdate verifies that calling StateHasChanged()
// triggers a re-render with updated data binding values.
func TestDataBinding_StateUpdate(t *testing.T) {
	// Arrange: Create a counter with initial state
	counter := &Counter{Count: 3, Label: "Initial"}
	renderer := testcomponents.NewTestRenderer()
	renderer.Mount(counter)
	before, err := renderer.Query("div.counter > p")
	if err != nil {
		t.Fatalf("Unexpected query error: %v", err)
	}

	// Act: Update component state using Increment method (which calls StateHasChanged)
	counter.Increment()

	// Assert: Verify the document was updated in place
	texts := paragraphs(t, renderer)
	if texts[0] != "Count: 4" {
		t.Errorf("Expected 'Count: 4' after increment, got '%s'", texts[0])
	}
	if texts[1] != "Label: Initial" {
		t.Errorf("Label should not change, got '%s'", texts[1])
	}
	after, _ := renderer.Query("div.counter > p")
	if before != after {
		t.Errorf("Expected the paragraph element to be reused")
	}
}

// TestDataBinding_MultipleUpdates verifies that multiple state changes
// each trigger re-renders with correct data binding.
func TestDataBinding_MultipleUpdates(t *testing.T) {
	// Arrange
	counter := &Counter{Count: 2, Label: "Start"}
	renderer := testcomponents.NewTestRenderer()
	renderer.Mount(counter)

	// Act & Assert: Multiple increments
	for i := 1; i <= 5; i++ {
		counter.Increment()
		expected := fmt.Sprintf("Count: %d", 2+i)
		if got := paragraphs(t, renderer)[0]; got != expected {
			t.Errorf("After %d increment(s), expected '%s', got '%s'", i, expected, got)
		}
	}

	// Act & Assert: Update label
	counter.SetLabel("Updated")
	texts := paragraphs(t, renderer)
	if texts[1] != "Label: Updated" {
		t.Errorf("Expected 'Label: Updated', got '%s'", texts[1])
	}
	if texts[0] != "Count: 7" {
		t.Errorf("Count should still be 7, got '%s'", texts[0])
	}
}

// TestDataBinding_ClickIncrements verifies that a click on the button reaches
// the component handler through the event registry.
func TestDataBinding_ClickIncrements(t *testing.T) {
	// Arrange
	renderer := testcomponents.NewTestRenderer()
	counter := &Counter{Count: 0, Label: "Clicks", Events: renderer.Registry()}
	renderer.Mount(counter)

	// Act
	for range 3 {
		if err := renderer.Click("button.increment"); err != nil {
			t.Fatalf("Unexpected click error: %v", err)
		}
	}

	// Assert
	if counter.Count != 3 {
		t.Errorf("Expected count 3, got %d", counter.Count)
	}
	if got := paragraphs(t, renderer)[0]; got != "Count: 3" {
		t.Errorf("Expected 'Count: 3', got '%s'", got)
	}
	if n := renderer.Registry().Source("click").ListenerCount(); n != 1 {
		t.Errorf("Expected 1 click handler, got %d", n)
	}
}

// TestDataBinding_UnmountDetachesHandlers verifies that removing the tree
// releases the native click listener.
func TestDataBinding_UnmountDetachesHandlers(t *testing.T) {
	// Arrange
	renderer := testcomponents.NewTestRenderer()
	renderer.Mount(&Counter{Events: renderer.Registry()})

	// Act
	if err := renderer.Root().Unmount(); err != nil {
		t.Fatalf("Unexpected unmount error: %v", err)
	}

	// Assert
	if n := renderer.Document().ListenerCount("click"); n != 0 {
		t.Errorf("Expected no click listeners after unmount, got %d", n)
	}
	if html := renderer.HTML(); html != "" {
		t.Errorf("Expected empty mount point, got '%s'", html)
	}
}

// TestDataBinding_RenderIsolation verifies that multiple component instances
// maintain separate state and documents.
func TestDataBinding_RenderIsolation(t *testing.T) {
	// Arrange: Create two separate counter instances
	counter1 := &Counter{Count: 10, Label: "First"}
	counter2 := &Counter{Count: 20, Label: "Second"}
	renderer1 := testcomponents.NewTestRenderer()
	renderer2 := testcomponents.NewTestRenderer()
	renderer1.Mount(counter1)
	renderer2.Mount(counter2)

	// Act: Update only counter1
	counter1.Increment()

	// Assert: Only counter1's document changed
	if got := paragraphs(t, renderer1)[0]; got != "Count: 11" {
		t.Errorf("Counter1 should be 11, got: %s", got)
	}
	if got := paragraphs(t, renderer2)[0]; got != "Count: 20" {
		t.Errorf("Counter2 should still be 20, got: %s", got)
	}
}

package ssr

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vcrobe/vtree/vdom"
)

// Page is a rendered HTML document.
type Page struct {
	HTML string
	ETag string
}

// PageRenderer keeps one blueprint per route so that every render of a
// route reuses the markup of the subtrees that did not change since the
// previous one. It is safe for concurrent use; renders of the same route are
// serialized.
type PageRenderer struct {
	doctype bool
	logger  *zap.Logger

	mu     sync.Mutex
	routes map[string]*routeState
}

type routeState struct {
	mu        sync.Mutex
	renderer  *Renderer
	blueprint *Blueprint
}

// NewPageRenderer creates a page renderer. With doctype set, pages start
// with <!DOCTYPE html>.
func NewPageRenderer(doctype bool, logger *zap.Logger) *PageRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageRenderer{doctype: doctype, logger: logger.Named("ssr"), routes: make(map[string]*routeState)}
}

func (p *PageRenderer) route(key string) *routeState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.routes[key]
	if !ok {
		st = &routeState{renderer: NewRenderer(p.logger)}
		p.routes[key] = st
	}
	return st
}

// Render renders node as the page of route key.
func (p *PageRenderer) Render(key string, node *vdom.Node, ctx vdom.Context) (Page, Stats) {
	st := p.route(key)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.renderer.ResetStats()
	st.blueprint = st.renderer.CreateBlueprint(node, ctx, st.blueprint)
	body := st.renderer.Serialize(st.blueprint)

	var sb strings.Builder
	if p.doctype {
		sb.WriteString("<!DOCTYPE html>")
	}
	sb.WriteString(body)
	sum := sha256.Sum256([]byte(sb.String()))
	return Page{HTML: sb.String(), ETag: `"` + hex.EncodeToString(sum[:16]) + `"`}, st.renderer.Stats()
}

// Len returns the number of routes with a blueprint.
func (p *PageRenderer) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.routes)
}

// Blueprint returns the current blueprint of route key, or nil.
func (p *PageRenderer) Blueprint(key string) *Blueprint {
	p.mu.Lock()
	st, ok := p.routes[key]
	p.mu.Unlock()
	if !ok {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.blueprint
}

package runtime

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/dom"
	"github.com/vcrobe/vtree/router"
	"github.com/vcrobe/vtree/scheduler"
	"github.com/vcrobe/vtree/vdom"
)

// ErrNotMounted is returned by operations that need a mounted tree.
var ErrNotMounted = errors.New("runtime: root is not mounted")

var _ Navigator = (*Root)(nil)

// Root owns a node tree mounted under a container host node.
type Root struct {
	id         string
	reconciler *vdom.Reconciler
	host       vdom.Host
	container  vdom.NativeNode
	ctx        vdom.Context
	routes     *router.Table
	sched      *scheduler.Scheduler
	inst       *vdom.Instance
	logger     *zap.Logger
}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Root) { r.logger = logger }
}

// WithContext sets the initial ambient context.
func WithContext(ctx vdom.Context) Option {
	return func(r *Root) { r.ctx = ctx }
}

// WithScheduler batches StateHasChanged calls into the frames of s.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(r *Root) { r.sched = s }
}

// WithRouter enables Navigate over routes.
func WithRouter(routes *router.Table) Option {
	return func(r *Root) { r.routes = routes }
}

// NewRoot creates a root rendering into container.
func NewRoot(host vdom.Host, container vdom.NativeNode, opts ...Option) *Root {
	r := &Root{
		id:        uuid.NewString(),
		host:      host,
		container: container,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reconciler = vdom.NewReconciler(host, r.logger)
	if r.sched != nil {
		r.reconciler.SetInvalidator(r.sched)
	}
	r.logger = r.logger.Named("runtime").With(zap.String("root", r.id))
	return r
}

// RenderToSelector mounts n under the first element of doc matching
// selector.
func RenderToSelector(doc *dom.Document, selector string, n *vdom.Node, opts ...Option) (*Root, error) {
	mount, err := doc.Query(selector)
	if err != nil {
		return nil, fmt.Errorf("mount element not found: %w", err)
	}
	r := NewRoot(doc, mount, opts...)
	r.Render(n)
	return r, nil
}

// ID returns the unique id of the root.
func (r *Root) ID() string {
	return r.id
}

// Instance returns the instance of the mounted node, or nil.
func (r *Root) Instance() *vdom.Instance {
	return r.inst
}

// Context returns the ambient context passed to the tree.
func (r *Root) Context() vdom.Context {
	return r.ctx.Merge(vdom.Context{NavigatorKey: r})
}

// Render mounts n, or updates the mounted tree to n. A nil node unmounts.
func (r *Root) Render(n *vdom.Node) {
	if n == nil {
		if err := r.Unmount(); err != nil && !errors.Is(err, ErrNotMounted) {
			r.logger.Warn("unmount failed", zap.Error(err))
		}
		return
	}
	r.guard("render", func() {
		ctx := r.Context()
		if r.inst == nil {
			r.inst = r.reconciler.Create(n, ctx)
			r.host.InsertBefore(r.container, r.inst.Native(), nil)
			r.logger.Debug("mounted", zap.String("node", vdom.Describe(n)))
			return
		}
		old := r.inst
		oldNative := old.Native()
		r.inst = r.reconciler.Diff(old, n, ctx)
		if r.inst != old {
			r.host.ReplaceChild(r.container, r.inst.Native(), oldNative)
		}
	})
}

// SetContext replaces the ambient context and refreshes the connect nodes
// that depend on it.
func (r *Root) SetContext(ctx vdom.Context) {
	r.ctx = ctx
	r.Update()
}

// Update re-runs the selectors of the mounted tree against the current
// context.
func (r *Root) Update() {
	if r.inst == nil {
		return
	}
	r.Render(r.inst.Node())
}

// Navigate renders the page registered for path.
func (r *Root) Navigate(path string) error {
	if r.routes == nil {
		return fmt.Errorf("navigate to %s: no router configured", path)
	}
	page, err := r.routes.Resolve(path)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", path, err)
	}
	r.Render(page)
	return nil
}

// Unmount disposes the tree and removes it from the container.
func (r *Root) Unmount() error {
	if r.inst == nil {
		return ErrNotMounted
	}
	native := r.inst.Native()
	r.reconciler.Dispose(r.inst)
	r.host.RemoveChild(r.container, native)
	r.inst = nil
	return nil
}

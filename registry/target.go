package registry

import "context"

// InvocationTarget describes the single entry point through which indirect
// dispatch jumps. It is resolved once per Registry and then reused.
type InvocationTarget struct {
	// Name is the entry point name the target was resolved from.
	Name string
	// Method is the qualified description shown in diagnostics.
	Method string

	fn func(ctx context.Context, h Handle, args []any) (any, error)
}

// Invoke dispatches through the target.
func (t *InvocationTarget) Invoke(ctx context.Context, h Handle, args []any) (any, error) {
	return t.fn(ctx, h, args)
}

// String returns the method description, or "<null>" for a nil target.
func (t *InvocationTarget) String() string {
	if t == nil {
		return "<null>"
	}
	return t.Method
}

// entryPoints is the static table of names a target may resolve to.
var entryPoints = map[string]func(r *Registry) *InvocationTarget{
	"Invoke": func(r *Registry) *InvocationTarget {
		return &InvocationTarget{
			Name:   "Invoke",
			Method: "registry.(*Registry).Invoke",
			fn:     r.Invoke,
		}
	},
}

// TargetName returns the configured entry point name.
func (r *Registry) TargetName() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targetName
}

// Target returns the memoized invocation target, resolving it on first use.
// It reports false when the configured name has no entry point; a failed
// resolution is retried on the next call.
func (r *Registry) Target() (*InvocationTarget, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.target != nil {
		return r.target, true
	}
	resolve, ok := entryPoints[r.targetName]
	if !ok {
		return nil, false
	}
	r.target = resolve(r)
	r.logger().Debugf("resolved invocation target %s", r.target.Method)
	return r.target, true
}

// Package domain provides an in-process isolation domain: an execution
// context with its own lifetime that reaches host callbacks only through the
// identity registry.
//
// Every call into a domain runs on the domain's single worker goroutine.
// Arguments and results are copied through the boundary codec on the way
// in and out, so no reference crosses. Unloading a domain purges every
// callback it exported from the registry.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"

	"github.com/chazu/hostbridge/registry"
)

// DefaultQueueSize is the worker queue length when none is configured.
const DefaultQueueSize = 64

// ErrUnloaded is returned by any operation on an unloaded domain.
var ErrUnloaded = errors.New("domain unloaded")

var log = commonlog.GetLogger("hostbridge.domain")

// export is the registry entry for a callback exported by a domain. Each
// Export gets its own export, so Unload can clean up by identity even when
// the underlying callback is not comparable.
type export struct {
	cb registry.Callback
}

// Invoke forwards to the exported callback.
func (e *export) Invoke(ctx context.Context, args []any) (any, error) {
	return e.cb.Invoke(ctx, args)
}

// Domain is one isolation domain.
type Domain struct {
	name   string
	reg    *registry.Registry
	worker *Worker
	codec  *Codec

	queueSize int

	mu       deadlock.Mutex
	exports  map[registry.Handle]*export
	unloaded bool
}

// Option configures a Domain.
type Option func(*Domain)

// WithQueueSize sets how many calls may wait for the worker.
func WithQueueSize(n int) Option {
	return func(d *Domain) { d.queueSize = n }
}

// WithCodec replaces the boundary codec.
func WithCodec(c *Codec) Option {
	return func(d *Domain) { d.codec = c }
}

// New creates a domain named name that dispatches through reg, and starts
// its worker.
func New(name string, reg *registry.Registry, opts ...Option) (*Domain, error) {
	if reg == nil {
		return nil, fmt.Errorf("domain %q: %w", name, registry.ErrUnavailable)
	}
	d := &Domain{
		name:      name,
		reg:       reg,
		queueSize: DefaultQueueSize,
		exports:   make(map[registry.Handle]*export),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.codec == nil {
		codec, err := NewCodec()
		if err != nil {
			return nil, err
		}
		d.codec = codec
	}
	d.worker = NewWorker(d.queueSize)
	log.Infof("domain %q loaded", name)
	return d, nil
}

// Name returns the domain's name.
func (d *Domain) Name() string { return d.name }

// Codec returns the domain's boundary codec.
func (d *Domain) Codec() *Codec { return d.codec }

// Export registers cb and records it as owned by this domain. An absent
// callback, including a typed nil, is rejected with registry.ErrInvalidCallback.
func (d *Domain) Export(cb registry.Callback) (registry.Handle, error) {
	if registry.IsNil(cb) {
		return registry.Handle{}, registry.ErrInvalidCallback
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unloaded {
		return registry.Handle{}, d.unloadedError()
	}

	e := &export{cb: cb}
	h, err := d.reg.Register(e)
	if err != nil {
		return registry.Handle{}, err
	}
	d.exports[h] = e
	return h, nil
}

// Exports returns the handles this domain still owns.
func (d *Domain) Exports() []registry.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]registry.Handle, 0, len(d.exports))
	for h := range d.exports {
		out = append(out, h)
	}
	return out
}

// Call dispatches h through the registry's invocation target on the
// domain's worker. args are copied in and the result is copied out. An
// unresolvable target fails with registry.ErrTargetUnresolved.
func (d *Domain) Call(ctx context.Context, h registry.Handle, args []any) (any, error) {
	if d.isUnloaded() {
		return nil, d.unloadedError()
	}
	target, ok := d.reg.Target()
	if !ok {
		return nil, fmt.Errorf("domain %q: %w %q", d.name, registry.ErrTargetUnresolved, d.reg.TargetName())
	}

	in, err := d.codec.CopyArgs(args)
	if err != nil {
		return nil, fmt.Errorf("domain %q: %w", d.name, err)
	}

	v, err := d.worker.Do(ctx, func() (any, error) {
		return target.Invoke(ctx, h, in)
	})
	if errors.Is(err, ErrStopped) {
		return nil, d.unloadedError()
	}
	if err != nil {
		return nil, err
	}

	out, err := d.codec.Copy(v)
	if err != nil {
		return nil, fmt.Errorf("domain %q: result: %w", d.name, err)
	}
	return out, nil
}

// Unload removes every callback this domain exported from the registry,
// stops the worker, and returns how many registry entries were removed.
// Later calls return 0.
func (d *Domain) Unload() int {
	d.mu.Lock()
	if d.unloaded {
		d.mu.Unlock()
		return 0
	}
	d.unloaded = true
	exports := d.exports
	d.exports = make(map[registry.Handle]*export)
	d.mu.Unlock()

	removed := 0
	for _, e := range exports {
		removed += d.reg.Cleanup(e)
	}
	d.worker.Stop()
	log.Infof("domain %q unloaded, released %d callback(s)", d.name, removed)
	return removed
}

// Unloaded reports whether Unload has run.
func (d *Domain) Unloaded() bool {
	return d.isUnloaded()
}

// isUnloaded reads the unloaded flag under the domain lock.
func (d *Domain) isUnloaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unloaded
}

// unloadedError wraps ErrUnloaded with the domain name.
func (d *Domain) unloadedError() error {
	return fmt.Errorf("domain %q: %w", d.name, ErrUnloaded)
}

// Package registry implements indirect dispatch keyed by opaque handles.
//
// A caller that cannot hold a callback directly registers it once and keeps
// only the returned Handle. Later, a single well-known entry point
// (Registry.Invoke, or the memoized InvocationTarget) looks the handle up and
// calls through.
//
// One mutex guards both the handle map and the memoized target. Every
// operation copies what it needs out under the lock, acts with the lock
// released, and takes the lock again to mutate, so a callback may re-enter
// the registry from inside Invoke.
package registry

import (
	"context"
	"maps"

	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("hostbridge.registry")

// DefaultTargetName names the entry point InvocationTarget resolves to.
const DefaultTargetName = "Invoke"

// Registry maps handles to callbacks. The zero value is unavailable; use New.
type Registry struct {
	mu        deadlock.Mutex
	callbacks map[Handle]Callback

	targetName string
	target     *InvocationTarget

	alarm *capacityAlarm
	log   commonlog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithTargetName overrides the entry point name resolved by Target. An empty
// name never resolves.
func WithTargetName(name string) Option {
	return func(r *Registry) { r.targetName = name }
}

// WithLogger replaces the package logger.
func WithLogger(logger commonlog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithCapacityAlarm calls fn, and logs a warning, whenever an insert brings
// the live count up to threshold. Nothing is ever evicted. A threshold of
// zero or less disables the alarm.
func WithCapacityAlarm(threshold int, fn func(count int)) Option {
	return func(r *Registry) {
		if threshold > 0 {
			r.alarm = &capacityAlarm{threshold: threshold, fn: fn, armed: true}
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		callbacks:  make(map[Handle]Callback),
		targetName: DefaultTargetName,
		log:        log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// logger returns the configured logger, falling back to the package logger
// for a zero-value Registry.
func (r *Registry) logger() commonlog.Logger {
	if r.log == nil {
		return log
	}
	return r.log
}

// Register stores cb under a freshly minted handle.
func (r *Registry) Register(cb Callback) (Handle, error) {
	h := NewHandle()
	if err := r.Bind(h, cb); err != nil {
		return Handle{}, err
	}
	return h, nil
}

// Bind stores cb under h, replacing any callback already bound there.
// Nothing changes on error.
func (r *Registry) Bind(h Handle, cb Callback) error {
	if r == nil {
		return ErrUnavailable
	}
	if h.IsZero() {
		return ErrInvalidHandle
	}
	if IsNil(cb) {
		return ErrInvalidCallback
	}

	r.mu.Lock()
	if r.callbacks == nil {
		r.mu.Unlock()
		return ErrUnavailable
	}
	r.callbacks[h] = cb
	count := len(r.callbacks)
	fire := r.alarm.check(count)
	r.mu.Unlock()

	if r.logger().AllowLevel(commonlog.Debug) {
		r.logger().Debugf("bound %s (%d live)", h, count)
	}
	if fire != nil {
		r.logger().Warningf("registry holds %d callbacks, reached alarm threshold %d", count, r.alarm.threshold)
		fire(count)
	}
	return nil
}

// Invoke resolves h and calls its callback with args. A zero or unknown
// handle yields a *DispatchError wrapping ErrNotFound. Errors from the
// callback are returned unchanged.
func (r *Registry) Invoke(ctx context.Context, h Handle, args []any) (any, error) {
	if r == nil {
		return nil, &DispatchError{Handle: h, Err: ErrUnavailable}
	}

	r.mu.Lock()
	cb, ok := r.callbacks[h]
	r.mu.Unlock()

	if !ok {
		r.logger().Debugf("dispatch miss for %s", h)
		return nil, &DispatchError{Handle: h, Err: ErrNotFound}
	}
	r.logger().Debugf("dispatch %s with %d argument(s)", h, len(args))
	return cb.Invoke(ctx, args)
}

// Lookup returns the callback bound to h without invoking it.
func (r *Registry) Lookup(h Handle) (Callback, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cb, ok := r.callbacks[h]
	return cb, ok
}

// Cleanup removes every entry bound to cb and returns how many went. A nil
// cb removes everything. Entries are removed one at a time, and an entry
// rebound to a different callback since the scan began is left alone.
func (r *Registry) Cleanup(cb Callback) int {
	if r == nil {
		return 0
	}

	r.mu.Lock()
	snapshot := maps.Clone(r.callbacks)
	r.mu.Unlock()

	all := IsNil(cb)
	removed := 0
	for h, entry := range snapshot {
		if !all && !sameCallback(entry, cb) {
			continue
		}
		r.mu.Lock()
		if cur, ok := r.callbacks[h]; ok && (all || sameCallback(cur, cb)) {
			delete(r.callbacks, h)
			removed++
		}
		r.mu.Unlock()
	}

	r.mu.Lock()
	r.alarm.rearm(len(r.callbacks))
	r.mu.Unlock()

	if removed > 0 {
		r.logger().Debugf("cleanup removed %d callback(s)", removed)
	}
	return removed
}

// Len returns the live entry count.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.callbacks)
}

// Handles returns a snapshot of every bound handle, in no particular order.
func (r *Registry) Handles() []Handle {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Handle, 0, len(r.callbacks))
	for h := range r.callbacks {
		out = append(out, h)
	}
	return out
}

// Stats returns counters for monitoring.
func (r *Registry) Stats() map[string]int {
	if r == nil {
		return map[string]int{"callbacks": 0, "resolved": 0, "alarmThreshold": 0}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := 0
	if r.target != nil {
		resolved = 1
	}
	threshold := 0
	if r.alarm != nil {
		threshold = r.alarm.threshold
	}
	return map[string]int{
		"callbacks":      len(r.callbacks),
		"resolved":       resolved,
		"alarmThreshold": threshold,
	}
}

// ---------------------------------------------------------------------------
// Capacity alarm
// ---------------------------------------------------------------------------

type capacityAlarm struct {
	threshold int
	fn        func(count int)
	armed     bool
}

// check disarms the alarm and returns its hook when count has reached the
// threshold. Called with the registry lock held; the hook runs after unlock.
func (a *capacityAlarm) check(count int) func(int) {
	if a == nil || !a.armed || count < a.threshold {
		return nil
	}
	a.armed = false
	if a.fn == nil {
		return func(int) {}
	}
	return a.fn
}

// rearm arms the alarm again once count has dropped below the threshold.
// Called with the registry lock held.
func (a *capacityAlarm) rearm(count int) {
	if a != nil && count < a.threshold {
		a.armed = true
	}
}

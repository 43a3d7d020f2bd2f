package domain

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/hostbridge/registry"
)

// ---------------------------------------------------------------------------
// Worker
// ---------------------------------------------------------------------------

func TestWorkerSerializesCalls(t *testing.T) {
	w := NewWorker(8)
	defer w.Stop()

	var active, maxActive atomic.Int32
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			_, err := w.Do(context.Background(), func() (any, error) {
				n := active.Add(1)
				if n > maxActive.Load() {
					maxActive.Store(n)
				}
				time.Sleep(time.Millisecond)
				active.Add(-1)
				return nil, nil
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if maxActive.Load() != 1 {
		t.Errorf("observed %d concurrent calls on one worker", maxActive.Load())
	}
}

func TestWorkerRecoversPanics(t *testing.T) {
	w := NewWorker(1)
	defer w.Stop()

	_, err := w.Do(context.Background(), func() (any, error) { panic("kaboom") })
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "kaboom" {
		t.Fatalf("err = %v, want *PanicError(kaboom)", err)
	}

	v, err := w.Do(context.Background(), func() (any, error) { return 42, nil })
	if err != nil || v != 42 {
		t.Errorf("worker unusable after panic: (%v, %v)", v, err)
	}
}

func TestWorkerStop(t *testing.T) {
	w := NewWorker(0)
	w.Stop()
	w.Stop()
	if !w.Stopped() {
		t.Error("Stopped() = false after Stop")
	}
	if _, err := w.Do(context.Background(), func() (any, error) { return nil, nil }); !errors.Is(err, ErrStopped) {
		t.Errorf("Do after Stop = %v", err)
	}
}

func TestWorkerHonoursContext(t *testing.T) {
	w := NewWorker(0)
	defer w.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go w.Do(context.Background(), func() (any, error) {
		close(started)
		<-release
		return nil, nil
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := w.Do(ctx, func() (any, error) { return nil, nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do on busy worker = %v, want deadline exceeded", err)
	}
	close(release)
}

// ---------------------------------------------------------------------------
// Codec
// ---------------------------------------------------------------------------

func TestCodecCopy(t *testing.T) {
	c, err := NewCodec()
	if err != nil {
		t.Fatal(err)
	}

	type point struct {
		X, Y int
	}
	cases := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"text", "text"},
		{7, int64(7)},
		{uint8(3), int64(3)},
		{-2, int64(-2)},
		{true, true},
		{1.5, 1.5},
		{[]byte{1, 2}, []byte{1, 2}},
		{[]string{"a", "b"}, []any{"a", "b"}},
		{map[string]int{"n": 1}, map[string]any{"n": int64(1)}},
		{point{X: 1, Y: 2}, map[string]any{"X": int64(1), "Y": int64(2)}},
	}
	for _, tc := range cases {
		got, err := c.Copy(tc.in)
		if err != nil {
			t.Errorf("Copy(%#v): %v", tc.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Copy(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestCodecCopySharesNoMemory(t *testing.T) {
	c, _ := NewCodec()
	in := []byte{1, 2, 3}
	out, err := c.Copy(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 99
	if out.([]byte)[0] != 1 {
		t.Error("copy aliases the original slice")
	}
}

func TestCodecRejectsFuncs(t *testing.T) {
	c, _ := NewCodec()
	if _, err := c.Copy(func() {}); err == nil {
		t.Error("a func crossed the boundary")
	}
	if _, err := c.CopyArgs([]any{"ok", make(chan int)}); err == nil {
		t.Error("a channel crossed the boundary")
	}
}

// ---------------------------------------------------------------------------
// Domain
// ---------------------------------------------------------------------------

func newTestDomain(t *testing.T, reg *registry.Registry) *Domain {
	t.Helper()
	d, err := New("test", reg, WithQueueSize(4))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Unload() })
	return d
}

func TestDomainCallCopiesAcrossBoundary(t *testing.T) {
	reg := registry.New()
	d := newTestDomain(t, reg)

	var seen []any
	h, err := d.Export(registry.CallbackFunc(func(_ context.Context, args []any) (any, error) {
		seen = args
		return map[string]any{"echo": args[0]}, nil
	}))
	if err != nil {
		t.Fatal(err)
	}

	arg := []byte("payload")
	got, err := d.Call(context.Background(), h, []any{arg, 5})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if !reflect.DeepEqual(seen, []any{[]byte("payload"), int64(5)}) {
		t.Errorf("callback saw %#v", seen)
	}
	if &seen[0].([]byte)[0] == &arg[0] {
		t.Error("argument crossed by reference")
	}
	want := map[string]any{"echo": []byte("payload")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Call = %#v, want %#v", got, want)
	}
}

func TestDomainCallUnknownHandle(t *testing.T) {
	d := newTestDomain(t, registry.New())
	_, err := d.Call(context.Background(), registry.NewHandle(), nil)
	var de *registry.DispatchError
	if !errors.As(err, &de) {
		t.Errorf("err = %v, want *registry.DispatchError", err)
	}
}

func TestDomainExportRejectsAbsentCallbacks(t *testing.T) {
	reg := registry.New()
	d := newTestDomain(t, reg)

	absent := map[string]registry.Callback{
		"nil":               nil,
		"nil CallbackFunc":  registry.CallbackFunc(nil),
		"typed nil pointer": (*nilCallback)(nil),
	}
	for name, cb := range absent {
		h, err := d.Export(cb)
		if !errors.Is(err, registry.ErrInvalidCallback) {
			t.Errorf("Export(%s) = %v, %v; want ErrInvalidCallback", name, h, err)
		}
	}
	if reg.Len() != 0 || len(d.Exports()) != 0 {
		t.Errorf("absent callbacks were registered: registry %d, exports %d", reg.Len(), len(d.Exports()))
	}
}

type nilCallback struct{}

func (*nilCallback) Invoke(context.Context, []any) (any, error) { return nil, nil }

func TestDomainCallUsesInvocationTarget(t *testing.T) {
	reg := registry.New()
	d := newTestDomain(t, reg)
	h, _ := d.Export(registry.CallbackFunc(func(context.Context, []any) (any, error) {
		return "ran", nil
	}))

	if _, err := d.Call(context.Background(), h, nil); err != nil {
		t.Fatalf("Call: %v", err)
	}
	var info string
	for _, p := range reg.Info(false) {
		if p.Label == "DynamicInvokeMethodInfo" {
			info = p.Value
		}
	}
	if info != "registry.(*Registry).Invoke" {
		t.Errorf("DynamicInvokeMethodInfo = %q after a domain call", info)
	}
}

func TestDomainCallUnresolvedTarget(t *testing.T) {
	reg := registry.New(registry.WithTargetName(""))
	d := newTestDomain(t, reg)
	ran := false
	h, _ := d.Export(registry.CallbackFunc(func(context.Context, []any) (any, error) {
		ran = true
		return "ran", nil
	}))

	_, err := d.Call(context.Background(), h, nil)
	if !errors.Is(err, registry.ErrTargetUnresolved) {
		t.Errorf("Call = %v, want ErrTargetUnresolved", err)
	}
	if ran {
		t.Error("callback ran without a resolved target")
	}
}

func TestDomainCallRejectsUncopyableResult(t *testing.T) {
	d := newTestDomain(t, registry.New())
	h, _ := d.Export(registry.CallbackFunc(func(context.Context, []any) (any, error) {
		return func() {}, nil
	}))
	if _, err := d.Call(context.Background(), h, nil); err == nil {
		t.Error("a func result crossed the boundary")
	}
}

func TestDomainCallPanicBecomesError(t *testing.T) {
	d := newTestDomain(t, registry.New())
	h, _ := d.Export(registry.CallbackFunc(func(context.Context, []any) (any, error) {
		panic("host bug")
	}))
	_, err := d.Call(context.Background(), h, nil)
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Errorf("err = %v, want *PanicError", err)
	}
}

func TestDomainUnloadPurgesExports(t *testing.T) {
	reg := registry.New()
	hostHandle, _ := reg.Register(registry.CallbackFunc(func(context.Context, []any) (any, error) {
		return "host", nil
	}))

	d, err := New("plugin", reg)
	if err != nil {
		t.Fatal(err)
	}
	fn := registry.CallbackFunc(func(context.Context, []any) (any, error) { return "plugin", nil })
	h1, _ := d.Export(fn)
	h2, _ := d.Export(fn)
	if len(d.Exports()) != 2 || reg.Len() != 3 {
		t.Fatalf("exports=%d registry=%d", len(d.Exports()), reg.Len())
	}

	if n := d.Unload(); n != 2 {
		t.Errorf("Unload = %d, want 2", n)
	}
	if n := d.Unload(); n != 0 {
		t.Errorf("second Unload = %d, want 0", n)
	}
	if !d.Unloaded() {
		t.Error("Unloaded() = false")
	}

	for _, h := range []registry.Handle{h1, h2} {
		if _, err := reg.Invoke(context.Background(), h, nil); !errors.Is(err, registry.ErrNotFound) {
			t.Errorf("exported handle %s survived unload: %v", h, err)
		}
	}
	if got, err := reg.Invoke(context.Background(), hostHandle, nil); err != nil || got != "host" {
		t.Errorf("host entry disturbed: (%v, %v)", got, err)
	}

	if _, err := d.Call(context.Background(), hostHandle, nil); !errors.Is(err, ErrUnloaded) {
		t.Errorf("Call after unload = %v", err)
	}
	if _, err := d.Export(fn); !errors.Is(err, ErrUnloaded) {
		t.Errorf("Export after unload = %v", err)
	}
}

func TestNewDomainRequiresRegistry(t *testing.T) {
	if _, err := New("orphan", nil); !errors.Is(err, registry.ErrUnavailable) {
		t.Errorf("New without registry = %v", err)
	}
}

func TestDomainCallsAcrossDomains(t *testing.T) {
	reg := registry.New()
	host := newTestDomain(t, reg)
	plugin := newTestDomain(t, reg)

	h, _ := host.Export(registry.CallbackFunc(func(_ context.Context, args []any) (any, error) {
		return len(args), nil
	}))

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			v, err := plugin.Call(context.Background(), h, []any{"a", "b"})
			if err != nil {
				return err
			}
			if v != int64(2) {
				return errors.New("wrong result")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"

	"github.com/chazu/hostbridge/config"
	"github.com/chazu/hostbridge/remote"
)

func testHost(t *testing.T) *host {
	t.Helper()
	h, err := newHost(config.Default())
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	t.Cleanup(h.close)
	return h
}

func TestHostExportsBuiltins(t *testing.T) {
	h := testHost(t)
	for _, name := range []string{"echo", "stats"} {
		if h.builtins[name].IsZero() {
			t.Errorf("builtin %q not exported", name)
		}
	}
	if h.reg.Len() != 2 {
		t.Errorf("registry holds %d callbacks, want 2", h.reg.Len())
	}
}

func TestHostServesUnderConnectPath(t *testing.T) {
	h := testHost(t)
	srv := httptest.NewServer(h.connectMux("/bridge/"))
	defer srv.Close()

	c := remote.NewConnectClient(srv.Client(), srv.URL+"/bridge")
	got, err := c.Invoke(context.Background(), h.builtins["echo"], []any{"hi", int64(2)})
	if err != nil {
		t.Fatalf("Invoke echo: %v", err)
	}
	if want := []any{"hi", int64(2)}; !reflect.DeepEqual(got, want) {
		t.Errorf("echo = %#v, want %#v", got, want)
	}

	stats, err := c.Invoke(context.Background(), h.builtins["stats"], nil)
	if err != nil {
		t.Fatalf("Invoke stats: %v", err)
	}
	if stats.(map[string]any)["callbacks"] != int64(2) {
		t.Errorf("stats = %#v", stats)
	}
}

func TestHostCloseReleasesBuiltins(t *testing.T) {
	h, err := newHost(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	h.close()
	if h.reg.Len() != 0 {
		t.Errorf("registry holds %d callbacks after close", h.reg.Len())
	}
}

func TestHandleInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := handleInfo(config.Default(), &buf); err != nil {
		t.Fatalf("handleInfo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Command Callback Wrapper", "Callbacks", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestHandleInfoShowsResolvedTarget(t *testing.T) {
	var buf bytes.Buffer
	if err := handleInfo(config.Default(), &buf); err != nil {
		t.Fatalf("handleInfo: %v", err)
	}
	if !strings.Contains(buf.String(), "registry.(*Registry).Invoke") {
		t.Errorf("info output lacks the resolved target:\n%s", buf.String())
	}
}

func TestHostHonoursTargetName(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.TargetName = "Missing"
	h, err := newHost(cfg)
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	defer h.close()

	srv := httptest.NewServer(h.connectMux(""))
	defer srv.Close()
	c := remote.NewConnectClient(srv.Client(), srv.URL)
	_, err = c.Invoke(context.Background(), h.builtins["echo"], nil)
	var ce *remote.CallError
	if !errors.As(err, &ce) || ce.Code != codes.FailedPrecondition {
		t.Errorf("err = %v, want FailedPrecondition", err)
	}
}

func TestParseArgs(t *testing.T) {
	got := parseArgs([]string{"puts", "42", "-7", "4x"})
	want := []any{"puts", int64(42), int64(-7), "4x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseArgs = %#v, want %#v", got, want)
	}
}

func TestHandleCallUsage(t *testing.T) {
	if err := handleCall([]string{"localhost:1"}, &bytes.Buffer{}); err == nil {
		t.Error("expected usage error")
	}
	if err := handleCall([]string{"localhost:1", "garbage"}, &bytes.Buffer{}); err == nil {
		t.Error("expected handle parse error")
	}
}

func TestServeNeedsTransport(t *testing.T) {
	cfg := config.Default()
	cfg.Remote.Listen = ""
	cfg.Remote.ConnectListen = ""
	if err := handleServe(cfg); err == nil {
		t.Error("handleServe without transports should fail")
	}
}

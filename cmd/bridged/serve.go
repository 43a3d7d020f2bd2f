package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/chazu/hostbridge/config"
	"github.com/chazu/hostbridge/domain"
	"github.com/chazu/hostbridge/registry"
	"github.com/chazu/hostbridge/remote"
)

// host is one assembled registry, its domain, and the remote server in
// front of them.
type host struct {
	reg      *registry.Registry
	dom      *domain.Domain
	srv      *remote.Server
	builtins map[string]registry.Handle
}

// newHost assembles a host from cfg and exports the built-in callbacks.
func newHost(cfg *config.Config) (*host, error) {
	reg := registry.New(
		registry.WithTargetName(cfg.Registry.TargetName),
		registry.WithCapacityAlarm(cfg.Registry.CapacityAlarm, nil),
	)
	dom, err := domain.New("bridged", reg, domain.WithQueueSize(cfg.Domain.QueueSize))
	if err != nil {
		return nil, err
	}
	if _, ok := reg.Target(); !ok {
		log.Warningf("invocation target %q not resolved; remote calls will fail", cfg.Registry.TargetName)
	}
	h := &host{
		reg:      reg,
		dom:      dom,
		srv:      remote.NewServer(reg, remote.WithDomain(dom)),
		builtins: make(map[string]registry.Handle),
	}
	if err := h.exportBuiltins(); err != nil {
		dom.Unload()
		return nil, err
	}
	return h, nil
}

// exportBuiltins binds the callbacks every bridged instance offers.
func (h *host) exportBuiltins() error {
	builtins := map[string]registry.Callback{
		"echo": registry.Func(func(_ context.Context, args []any) (any, error) {
			return args, nil
		}),
		"stats": registry.Func(func(context.Context, []any) (any, error) {
			stats := h.reg.Stats()
			out := make(map[string]any, len(stats))
			for k, v := range stats {
				out[k] = int64(v)
			}
			return out, nil
		}),
	}
	for name, cb := range builtins {
		handle, err := h.dom.Export(cb)
		if err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		h.builtins[name] = handle
	}
	return nil
}

// close unloads the domain, releasing every export.
func (h *host) close() {
	n := h.dom.Unload()
	log.Infof("released %d callbacks", n)
}

// connectMux mounts the Connect transport under prefix.
func (h *host) connectMux(prefix string) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return remote.NewServeMux(h.srv)
	}
	path, handler := h.srv.ConnectHandler()
	mux := http.NewServeMux()
	mux.Handle(prefix+path, http.StripPrefix(prefix, handler))
	return mux
}

// handleServe processes the `bridged serve` subcommand.
func handleServe(cfg *config.Config) error {
	if cfg.Remote.Listen == "" && cfg.Remote.ConnectListen == "" {
		return errors.New("no transport configured: set remote.listen or remote.connect-listen")
	}

	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	for name, handle := range h.builtins {
		fmt.Printf("%-6s %s\n", name, handle)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if addr := cfg.Remote.Listen; addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		gs := grpc.NewServer()
		h.srv.RegisterGRPC(gs)
		log.Noticef("gRPC listening on %s", lis.Addr())
		g.Go(func() error { return gs.Serve(lis) })
		g.Go(func() error {
			<-ctx.Done()
			gs.GracefulStop()
			return nil
		})
	}

	if addr := cfg.Remote.ConnectListen; addr != "" {
		hs := &http.Server{
			Addr:              addr,
			Handler:           h.connectMux(cfg.Remote.ConnectPath),
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Noticef("Connect listening on http://%s%s%s", addr, cfg.Remote.ConnectPath, remote.InvokeProcedure)
		g.Go(func() error {
			if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	log.Notice("stopped")
	return err
}

// handleInfo processes the `bridged info` subcommand.
func handleInfo(cfg *config.Config, w io.Writer) error {
	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	defer h.close()
	return h.reg.WriteInfo(w, true)
}

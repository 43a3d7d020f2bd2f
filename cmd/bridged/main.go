// bridged hosts an identity registry and serves its indirect entry point
// over gRPC and Connect.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/hostbridge/config"
)

var log = commonlog.GetLogger("hostbridge.bridged")

func main() {
	configDir := flag.String("config", ".", "Directory to search upward from for hostbridge.toml")
	verbose := flag.Bool("v", false, "Verbose output (overrides log.verbosity)")
	listen := flag.String("listen", "", "gRPC listen address (overrides remote.listen)")
	connectListen := flag.String("connect-listen", "", "Connect listen address (overrides remote.connect-listen)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bridged [options] [serve|info|call] ...\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  serve                          Serve the registry (default)\n")
		fmt.Fprintf(os.Stderr, "  info                           Print registry diagnostics and exit\n")
		fmt.Fprintf(os.Stderr, "  call <addr> <handle> [args...] Invoke a remote callback over gRPC\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Verbosity = int(commonlog.Debug)
	}
	if *listen != "" {
		cfg.Remote.Listen = *listen
	}
	if *connectListen != "" {
		cfg.Remote.ConnectListen = *connectListen
	}

	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
	timeout, err := cfg.DeadlockTimeout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	deadlock.Opts.DeadlockTimeout = timeout

	args := flag.Args()
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		err = handleServe(cfg)
	case "info":
		err = handleInfo(cfg, os.Stdout)
	case "call":
		err = handleCall(args, os.Stdout)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig finds hostbridge.toml above dir, falling back to defaults.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/chazu/hostbridge/registry"
	"github.com/chazu/hostbridge/remote"
)

// handleCall processes the `bridged call` subcommand.
// Usage:
//
//	bridged call <addr> <handle> [args...]
//
// Integer-looking arguments are sent as integers, the rest as strings.
func handleCall(args []string, w io.Writer) error {
	if len(args) < 2 {
		return errors.New("usage: bridged call <addr> <handle> [args...]")
	}
	h, err := registry.ParseHandle(args[1])
	if err != nil {
		return err
	}

	c, err := remote.Dial(args[0])
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := c.Invoke(ctx, h, parseArgs(args[2:]))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", result)
	return err
}

// parseArgs converts command line arguments into call arguments.
func parseArgs(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			out[i] = n
			continue
		}
		out[i] = s
	}
	return out
}

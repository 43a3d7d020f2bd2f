package registry

import (
	"fmt"
	"io"
	"strconv"
)

// InfoTitle heads the registry's section of a host diagnostic report.
const InfoTitle = "Command Callback Wrapper"

const displayNull = "<null>"

// InfoPair is one label/value line of diagnostics.
type InfoPair struct {
	Label string
	Value string
}

// Info reports the target name, the resolved target, and the live count.
// Unset or zero items are left out unless includeEmpty is true. Info never
// resolves the target and never mutates the registry.
func (r *Registry) Info(includeEmpty bool) []InfoPair {
	if r == nil {
		if !includeEmpty {
			return nil
		}
		return []InfoPair{
			{"DynamicInvokeMethodName", displayNull},
			{"DynamicInvokeMethodInfo", displayNull},
			{"Callbacks", displayNull},
		}
	}

	r.mu.Lock()
	name := r.targetName
	target := r.target
	count := len(r.callbacks)
	available := r.callbacks != nil
	r.mu.Unlock()

	var pairs []InfoPair
	if includeEmpty || name != "" {
		value := displayNull
		if name != "" {
			value = strconv.Quote(name)
		}
		pairs = append(pairs, InfoPair{"DynamicInvokeMethodName", value})
	}
	if includeEmpty || target != nil {
		pairs = append(pairs, InfoPair{"DynamicInvokeMethodInfo", target.String()})
	}
	if includeEmpty || count > 0 {
		value := displayNull
		if available {
			value = strconv.Itoa(count)
		}
		pairs = append(pairs, InfoPair{"Callbacks", value})
	}
	return pairs
}

// WriteInfo writes Info as a titled section. Nothing is written when there
// is nothing to report.
func (r *Registry) WriteInfo(w io.Writer, includeEmpty bool) error {
	pairs := r.Info(includeEmpty)
	if len(pairs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s\n", InfoTitle); err != nil {
		return err
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", p.Label, p.Value); err != nil {
			return err
		}
	}
	return nil
}

package bridge

import (
	"fmt"
	"reflect"
)

// Kind identifies a callback capability and the bridge that wraps it.
type Kind int

const (
	KindExecute Kind = iota + 1
	KindEvent
	KindEntropy
	KindUnknown
	KindNewHost
	KindNewProcedure
	KindNewWebClient
	KindPackage
	KindStringTransform
	KindInteractiveLoop
	KindWebTransfer
	KindAsynchronous
)

var kindNames = map[Kind]string{
	KindExecute:         "execute",
	KindEvent:           "event",
	KindEntropy:         "entropy",
	KindUnknown:         "unknown",
	KindNewHost:         "new host",
	KindNewProcedure:    "new procedure",
	KindNewWebClient:    "new web client",
	KindPackage:         "package",
	KindStringTransform: "string transform",
	KindInteractiveLoop: "interactive loop",
	KindWebTransfer:     "web transfer",
	KindAsynchronous:    "asynchronous",
}

// Kinds lists every bridge kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindExecute, KindEvent, KindEntropy, KindUnknown,
		KindNewHost, KindNewProcedure, KindNewWebClient, KindPackage,
		KindStringTransform, KindInteractiveLoop, KindWebTransfer, KindAsynchronous,
	}
}

// String returns the kind name used in error messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// invalidMessage is the text of every absent-capability failure for k.
func (k Kind) invalidMessage() string {
	return "invalid " + k.String() + " callback"
}

// invalid returns the factory error for an absent kind capability.
func invalid(kind Kind) error {
	return &invalidCallbackError{kind: kind}
}

// isNilCapability reports whether a capability is absent, including typed nil
// pointers and nil funcs stored in a non-nil interface.
func isNilCapability(capability any) bool {
	if capability == nil {
		return true
	}
	v := reflect.ValueOf(capability)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Package bridge holds the narrow facades that carry host-supplied callback
// capabilities across an isolation boundary.
//
// A Bridge wraps exactly one capability and forwards exactly one operation to
// it. Bridges are immutable once created, keep no other state, and never
// retry, time out, or synchronize: concurrency is the capability's concern.
//
// Every factory rejects an absent capability with an "invalid <kind> callback"
// error. Forwarding methods re-check anyway, because a zero-value Bridge can
// still reach them. Status+message kinds report that case as an Error
// outcome; the asynchronous and string transform kinds have no failure
// channel and panic with *MisuseError instead.
package bridge

// Bridge is implemented by every facade in this package.
type Bridge interface {
	Kind() Kind
}

// NewForKind builds the bridge for kind around capability, which must
// implement that kind's capability interface.
func NewForKind(kind Kind, capability any) (Bridge, error) {
	if isNilCapability(capability) {
		return nil, invalid(kind)
	}
	switch kind {
	case KindExecute:
		if c, ok := capability.(ExecuteCallback); ok {
			return NewExecuteBridge(c)
		}
	case KindEvent:
		if c, ok := capability.(EventCallback); ok {
			return NewEventBridge(c)
		}
	case KindEntropy:
		if c, ok := capability.(EntropyProvider); ok {
			return NewEntropyBridge(c)
		}
	case KindUnknown:
		if c, ok := capability.(UnknownCallback); ok {
			return NewUnknownBridge(c)
		}
	case KindNewHost:
		if c, ok := capability.(NewHostCallback); ok {
			return NewNewHostBridge(c)
		}
	case KindNewProcedure:
		if c, ok := capability.(NewProcedureCallback); ok {
			return NewNewProcedureBridge(c)
		}
	case KindNewWebClient:
		if c, ok := capability.(NewWebClientCallback); ok {
			return NewNewWebClientBridge(c)
		}
	case KindPackage:
		if c, ok := capability.(PackageCallback); ok {
			return NewPackageBridge(c)
		}
	case KindStringTransform:
		if c, ok := capability.(StringTransformCallback); ok {
			return NewStringTransformBridge(c)
		}
	case KindInteractiveLoop:
		if c, ok := capability.(InteractiveLoopCallback); ok {
			return NewInteractiveLoopBridge(c)
		}
	case KindWebTransfer:
		if c, ok := capability.(WebTransferCallback); ok {
			return NewWebTransferBridge(c)
		}
	case KindAsynchronous:
		if c, ok := capability.(AsynchronousCallback); ok {
			return NewAsynchronousBridge(c)
		}
	}
	return nil, invalid(kind)
}

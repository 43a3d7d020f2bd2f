package bridge

// ---------------------------------------------------------------------------
// Bridges without a failure channel. A missing capability here is misuse by
// the caller, so the forwarding methods panic with *MisuseError.
// ---------------------------------------------------------------------------

// StringTransformBridge forwards string transforms to a
// StringTransformCallback.
type StringTransformBridge struct {
	callback StringTransformCallback
}

// NewStringTransformBridge wraps callback, failing if it is absent.
func NewStringTransformBridge(callback StringTransformCallback) (*StringTransformBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindStringTransform)
	}
	return &StringTransformBridge{callback: callback}, nil
}

// Kind returns KindStringTransform.
func (b *StringTransformBridge) Kind() Kind { return KindStringTransform }

// Capability returns the wrapped callback.
func (b *StringTransformBridge) Capability() StringTransformCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// Transform maps value through the wrapped callback. It panics with *MisuseError
// when the bridge has no callback.
func (b *StringTransformBridge) Transform(value string) string {
	if b == nil || b.callback == nil {
		panic(&MisuseError{Kind: KindStringTransform})
	}
	return b.callback.Transform(value)
}

// AsynchronousBridge forwards completed asynchronous evaluations to an
// AsynchronousCallback.
type AsynchronousBridge struct {
	callback AsynchronousCallback
}

// NewAsynchronousBridge wraps callback, failing if it is absent.
func NewAsynchronousBridge(callback AsynchronousCallback) (*AsynchronousBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindAsynchronous)
	}
	return &AsynchronousBridge{callback: callback}, nil
}

// Kind returns KindAsynchronous.
func (b *AsynchronousBridge) Kind() Kind { return KindAsynchronous }

// Capability returns the wrapped callback.
func (b *AsynchronousBridge) Capability() AsynchronousCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// Complete delivers ctx to the wrapped callback. It panics with *MisuseError
// when the bridge has no callback.
func (b *AsynchronousBridge) Complete(ctx *AsynchronousContext) {
	if b == nil || b.callback == nil {
		panic(&MisuseError{Kind: KindAsynchronous})
	}
	b.callback.Complete(ctx)
}

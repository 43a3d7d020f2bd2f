package bridge

// ---------------------------------------------------------------------------
// Host-side bridges: event, entropy, new host, interactive loop
// ---------------------------------------------------------------------------

// EventBridge forwards queued events to an EventCallback.
type EventBridge struct {
	callback EventCallback
}

// NewEventBridge wraps callback, failing if it is absent.
func NewEventBridge(callback EventCallback) (*EventBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindEvent)
	}
	return &EventBridge{callback: callback}, nil
}

// Kind returns KindEvent.
func (b *EventBridge) Kind() Kind { return KindEvent }

// Capability returns the wrapped callback.
func (b *EventBridge) Capability() EventCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// Event hands the event to the wrapped callback. A bridge without one
// reports an invalid callback outcome.
func (b *EventBridge) Event(interp Interpreter, clientData ClientData) Outcome[any] {
	if b == nil || b.callback == nil {
		return Invalid[any](KindEvent)
	}
	return b.callback.Event(interp, clientData)
}

// EntropyBridge forwards random byte requests to an EntropyProvider.
type EntropyBridge struct {
	provider EntropyProvider
}

// NewEntropyBridge wraps provider, failing if it is absent.
func NewEntropyBridge(provider EntropyProvider) (*EntropyBridge, error) {
	if isNilCapability(provider) {
		return nil, invalid(KindEntropy)
	}
	return &EntropyBridge{provider: provider}, nil
}

// Kind returns KindEntropy.
func (b *EntropyBridge) Kind() Kind { return KindEntropy }

// Capability returns the wrapped provider.
func (b *EntropyBridge) Capability() EntropyProvider {
	if b == nil {
		return nil
	}
	return b.provider
}

// GetBytes fills buf from the wrapped provider.
func (b *EntropyBridge) GetBytes(buf []byte) Outcome[int] {
	if b == nil || b.provider == nil {
		return Invalid[int](KindEntropy)
	}
	return b.provider.GetBytes(buf)
}

// GetNonZeroBytes fills buf with non-zero bytes from the wrapped provider.
func (b *EntropyBridge) GetNonZeroBytes(buf []byte) Outcome[int] {
	if b == nil || b.provider == nil {
		return Invalid[int](KindEntropy)
	}
	return b.provider.GetNonZeroBytes(buf)
}

// NewHostBridge forwards host creation to a NewHostCallback.
type NewHostBridge struct {
	callback NewHostCallback
}

// NewNewHostBridge wraps callback, failing if it is absent.
func NewNewHostBridge(callback NewHostCallback) (*NewHostBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindNewHost)
	}
	return &NewHostBridge{callback: callback}, nil
}

// Kind returns KindNewHost.
func (b *NewHostBridge) Kind() Kind { return KindNewHost }

// Capability returns the wrapped callback.
func (b *NewHostBridge) Capability() NewHostCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// NewHost asks the wrapped callback to create a host.
func (b *NewHostBridge) NewHost(hostData HostData) Outcome[Host] {
	if b == nil || b.callback == nil {
		return Invalid[Host](KindNewHost)
	}
	return b.callback.NewHost(hostData)
}

// InteractiveLoopBridge forwards the interactive loop to an
// InteractiveLoopCallback.
type InteractiveLoopBridge struct {
	callback InteractiveLoopCallback
}

// NewInteractiveLoopBridge wraps callback, failing if it is absent.
func NewInteractiveLoopBridge(callback InteractiveLoopCallback) (*InteractiveLoopBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindInteractiveLoop)
	}
	return &InteractiveLoopBridge{callback: callback}, nil
}

// Kind returns KindInteractiveLoop.
func (b *InteractiveLoopBridge) Kind() Kind { return KindInteractiveLoop }

// Capability returns the wrapped callback.
func (b *InteractiveLoopBridge) Capability() InteractiveLoopCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// InteractiveLoop runs the wrapped interactive loop.
func (b *InteractiveLoopBridge) InteractiveLoop(interp Interpreter, loopData InteractiveLoopData) Outcome[any] {
	if b == nil || b.callback == nil {
		return Invalid[any](KindInteractiveLoop)
	}
	return b.callback.InteractiveLoop(interp, loopData)
}

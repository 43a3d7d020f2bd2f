package bridge

import "net/http"

// NewWebClientBridge forwards HTTP client creation to a NewWebClientCallback.
type NewWebClientBridge struct {
	callback NewWebClientCallback
}

// NewNewWebClientBridge wraps callback, failing if it is absent.
func NewNewWebClientBridge(callback NewWebClientCallback) (*NewWebClientBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindNewWebClient)
	}
	return &NewWebClientBridge{callback: callback}, nil
}

// Kind returns KindNewWebClient.
func (b *NewWebClientBridge) Kind() Kind { return KindNewWebClient }

// Capability returns the wrapped callback.
func (b *NewWebClientBridge) Capability() NewWebClientCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// NewWebClient asks the wrapped callback for an HTTP client.
func (b *NewWebClientBridge) NewWebClient(interp Interpreter, argument string, clientData ClientData) Outcome[*http.Client] {
	if b == nil || b.callback == nil {
		return Invalid[*http.Client](KindNewWebClient)
	}
	return b.callback.NewWebClient(interp, argument, clientData)
}

// WebTransferBridge forwards web transfer notifications to a
// WebTransferCallback.
type WebTransferBridge struct {
	callback WebTransferCallback
}

// NewWebTransferBridge wraps callback, failing if it is absent.
func NewWebTransferBridge(callback WebTransferCallback) (*WebTransferBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindWebTransfer)
	}
	return &WebTransferBridge{callback: callback}, nil
}

// Kind returns KindWebTransfer.
func (b *WebTransferBridge) Kind() Kind { return KindWebTransfer }

// Capability returns the wrapped callback.
func (b *WebTransferBridge) Capability() WebTransferCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// WebTransfer notifies the wrapped callback of a web transfer.
func (b *WebTransferBridge) WebTransfer(interp Interpreter, flags WebFlags, clientData ClientData) Outcome[any] {
	if b == nil || b.callback == nil {
		return Invalid[any](KindWebTransfer)
	}
	return b.callback.WebTransfer(interp, flags, clientData)
}

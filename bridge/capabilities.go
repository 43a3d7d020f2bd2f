package bridge

import "net/http"

// ---------------------------------------------------------------------------
// Capability interfaces
//
// Each interface carries exactly one operation. The matching Func type lets a
// host supply a plain function, the same way http.HandlerFunc does.
// ---------------------------------------------------------------------------

// ExecuteCallback runs a command.
type ExecuteCallback interface {
	Execute(interp Interpreter, clientData ClientData, args Arguments) Outcome[any]
}

// ExecuteFunc adapts a function to ExecuteCallback.
type ExecuteFunc func(interp Interpreter, clientData ClientData, args Arguments) Outcome[any]

// Execute calls f.
func (f ExecuteFunc) Execute(interp Interpreter, clientData ClientData, args Arguments) Outcome[any] {
	return f(interp, clientData, args)
}

// EventCallback services a queued interpreter event.
type EventCallback interface {
	Event(interp Interpreter, clientData ClientData) Outcome[any]
}

// EventFunc adapts a function to EventCallback.
type EventFunc func(interp Interpreter, clientData ClientData) Outcome[any]

// Event calls f.
func (f EventFunc) Event(interp Interpreter, clientData ClientData) Outcome[any] {
	return f(interp, clientData)
}

// EntropyProvider fills buffers with random bytes. Both operations report
// the number of bytes written.
type EntropyProvider interface {
	GetBytes(buf []byte) Outcome[int]
	GetNonZeroBytes(buf []byte) Outcome[int]
}

// UnknownCallback resolves a command name the interpreter could not find.
type UnknownCallback interface {
	Unknown(interp Interpreter, engineFlags EngineFlags, name string, args Arguments, lookupFlags LookupFlags) Outcome[Resolution]
}

// UnknownFunc adapts a function to UnknownCallback.
type UnknownFunc func(interp Interpreter, engineFlags EngineFlags, name string, args Arguments, lookupFlags LookupFlags) Outcome[Resolution]

// Unknown calls f.
func (f UnknownFunc) Unknown(interp Interpreter, engineFlags EngineFlags, name string, args Arguments, lookupFlags LookupFlags) Outcome[Resolution] {
	return f(interp, engineFlags, name, args, lookupFlags)
}

// NewHostCallback creates an interpreter host.
type NewHostCallback interface {
	NewHost(hostData HostData) Outcome[Host]
}

// NewHostFunc adapts a function to NewHostCallback.
type NewHostFunc func(hostData HostData) Outcome[Host]

// NewHost calls f.
func (f NewHostFunc) NewHost(hostData HostData) Outcome[Host] {
	return f(hostData)
}

// NewProcedureCallback creates a procedure for the interpreter.
type NewProcedureCallback interface {
	NewProcedure(interp Interpreter, procData ProcedureData) Outcome[Procedure]
}

// NewProcedureFunc adapts a function to NewProcedureCallback.
type NewProcedureFunc func(interp Interpreter, procData ProcedureData) Outcome[Procedure]

// NewProcedure calls f.
func (f NewProcedureFunc) NewProcedure(interp Interpreter, procData ProcedureData) Outcome[Procedure] {
	return f(interp, procData)
}

// NewWebClientCallback creates the HTTP client used for web transfers.
type NewWebClientCallback interface {
	NewWebClient(interp Interpreter, argument string, clientData ClientData) Outcome[*http.Client]
}

// NewWebClientFunc adapts a function to NewWebClientCallback.
type NewWebClientFunc func(interp Interpreter, argument string, clientData ClientData) Outcome[*http.Client]

// NewWebClient calls f.
func (f NewWebClientFunc) NewWebClient(interp Interpreter, argument string, clientData ClientData) Outcome[*http.Client] {
	return f(interp, argument, clientData)
}

// PackageCallback is the package fallback consulted when a required package
// cannot be found.
type PackageCallback interface {
	PackageFallback(interp Interpreter, name string, version string, text string, flags PackageFlags, exact bool) Outcome[any]
}

// PackageFunc adapts a function to PackageCallback.
type PackageFunc func(interp Interpreter, name string, version string, text string, flags PackageFlags, exact bool) Outcome[any]

// PackageFallback calls f.
func (f PackageFunc) PackageFallback(interp Interpreter, name string, version string, text string, flags PackageFlags, exact bool) Outcome[any] {
	return f(interp, name, version, text, flags, exact)
}

// StringTransformCallback maps one string to another. It has no failure
// channel.
type StringTransformCallback interface {
	Transform(value string) string
}

// StringTransformFunc adapts a function to StringTransformCallback.
type StringTransformFunc func(value string) string

// Transform calls f.
func (f StringTransformFunc) Transform(value string) string {
	return f(value)
}

// InteractiveLoopCallback replaces the interpreter's interactive loop.
type InteractiveLoopCallback interface {
	InteractiveLoop(interp Interpreter, loopData InteractiveLoopData) Outcome[any]
}

// InteractiveLoopFunc adapts a function to InteractiveLoopCallback.
type InteractiveLoopFunc func(interp Interpreter, loopData InteractiveLoopData) Outcome[any]

// InteractiveLoop calls f.
func (f InteractiveLoopFunc) InteractiveLoop(interp Interpreter, loopData InteractiveLoopData) Outcome[any] {
	return f(interp, loopData)
}

// WebTransferCallback is notified around a web transfer.
type WebTransferCallback interface {
	WebTransfer(interp Interpreter, flags WebFlags, clientData ClientData) Outcome[any]
}

// WebTransferFunc adapts a function to WebTransferCallback.
type WebTransferFunc func(interp Interpreter, flags WebFlags, clientData ClientData) Outcome[any]

// WebTransfer calls f.
func (f WebTransferFunc) WebTransfer(interp Interpreter, flags WebFlags, clientData ClientData) Outcome[any] {
	return f(interp, flags, clientData)
}

// AsynchronousCallback receives a completed asynchronous evaluation.
type AsynchronousCallback interface {
	Complete(ctx *AsynchronousContext)
}

// AsynchronousFunc adapts a function to AsynchronousCallback.
type AsynchronousFunc func(ctx *AsynchronousContext)

// Complete calls f.
func (f AsynchronousFunc) Complete(ctx *AsynchronousContext) {
	f(ctx)
}

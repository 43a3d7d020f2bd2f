package bridge

// ---------------------------------------------------------------------------
// Command-side bridges: execute, unknown, new procedure, package fallback
// ---------------------------------------------------------------------------

// ExecuteBridge forwards command execution to an ExecuteCallback.
type ExecuteBridge struct {
	callback ExecuteCallback
}

// NewExecuteBridge wraps callback, failing if it is absent.
func NewExecuteBridge(callback ExecuteCallback) (*ExecuteBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindExecute)
	}
	return &ExecuteBridge{callback: callback}, nil
}

// Kind returns KindExecute.
func (b *ExecuteBridge) Kind() Kind { return KindExecute }

// Capability returns the wrapped callback.
func (b *ExecuteBridge) Capability() ExecuteCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// Execute runs the command through the wrapped callback. A bridge without one
// reports an invalid callback outcome.
func (b *ExecuteBridge) Execute(interp Interpreter, clientData ClientData, args Arguments) Outcome[any] {
	if b == nil || b.callback == nil {
		return Invalid[any](KindExecute)
	}
	return b.callback.Execute(interp, clientData, args)
}

// UnknownBridge forwards unknown-command resolution to an UnknownCallback.
type UnknownBridge struct {
	callback UnknownCallback
}

// NewUnknownBridge wraps callback, failing if it is absent.
func NewUnknownBridge(callback UnknownCallback) (*UnknownBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindUnknown)
	}
	return &UnknownBridge{callback: callback}, nil
}

// Kind returns KindUnknown.
func (b *UnknownBridge) Kind() Kind { return KindUnknown }

// Capability returns the wrapped callback.
func (b *UnknownBridge) Capability() UnknownCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// Unknown asks the wrapped callback to resolve an unknown command.
func (b *UnknownBridge) Unknown(interp Interpreter, engineFlags EngineFlags, name string, args Arguments, lookupFlags LookupFlags) Outcome[Resolution] {
	if b == nil || b.callback == nil {
		return Invalid[Resolution](KindUnknown)
	}
	return b.callback.Unknown(interp, engineFlags, name, args, lookupFlags)
}

// NewProcedureBridge forwards procedure creation to a NewProcedureCallback.
type NewProcedureBridge struct {
	callback NewProcedureCallback
}

// NewNewProcedureBridge wraps callback, failing if it is absent.
func NewNewProcedureBridge(callback NewProcedureCallback) (*NewProcedureBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindNewProcedure)
	}
	return &NewProcedureBridge{callback: callback}, nil
}

// Kind returns KindNewProcedure.
func (b *NewProcedureBridge) Kind() Kind { return KindNewProcedure }

// Capability returns the wrapped callback.
func (b *NewProcedureBridge) Capability() NewProcedureCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// NewProcedure asks the wrapped callback to create a procedure.
func (b *NewProcedureBridge) NewProcedure(interp Interpreter, procData ProcedureData) Outcome[Procedure] {
	if b == nil || b.callback == nil {
		return Invalid[Procedure](KindNewProcedure)
	}
	return b.callback.NewProcedure(interp, procData)
}

// PackageBridge forwards package fallback lookups to a PackageCallback.
type PackageBridge struct {
	callback PackageCallback
}

// NewPackageBridge wraps callback, failing if it is absent.
func NewPackageBridge(callback PackageCallback) (*PackageBridge, error) {
	if isNilCapability(callback) {
		return nil, invalid(KindPackage)
	}
	return &PackageBridge{callback: callback}, nil
}

// Kind returns KindPackage.
func (b *PackageBridge) Kind() Kind { return KindPackage }

// Capability returns the wrapped callback.
func (b *PackageBridge) Capability() PackageCallback {
	if b == nil {
		return nil
	}
	return b.callback
}

// PackageFallback consults the wrapped package fallback.
func (b *PackageBridge) PackageFallback(interp Interpreter, name string, version string, text string, flags PackageFlags, exact bool) Outcome[any] {
	if b == nil || b.callback == nil {
		return Invalid[any](KindPackage)
	}
	return b.callback.PackageFallback(interp, name, version, text, flags, exact)
}

package bridge

// Payload types are owned by the interpreter and host. Bridges pass them
// through untouched, so they are declared here only as opaque carriers.

// Interpreter is the interpreter instance a callback runs against.
type Interpreter any

// ClientData is host-owned data threaded through a callback.
type ClientData any

// HostData describes a host to be created by a NewHostCallback.
type HostData any

// Host is an interpreter host produced by a NewHostCallback.
type Host any

// ProcedureData describes a procedure to be created by a NewProcedureCallback.
type ProcedureData any

// Procedure is a procedure produced by a NewProcedureCallback.
type Procedure any

// InteractiveLoopData is the state handed to an interactive loop.
type InteractiveLoopData any

// Arguments is a command invocation's argument list, command name first.
type Arguments []string

// EngineMode selects what an asynchronous evaluation does with its text.
type EngineMode int

const (
	EngineModeNone EngineMode = iota
	EngineModeEvaluateExpression
	EngineModeEvaluateScript
	EngineModeEvaluateFile
	EngineModeSubstituteString
	EngineModeSubstituteFile
)

// Flag sets carried through calls. Their bit meanings belong to the evaluator.
type (
	EngineFlags       uint64
	SubstitutionFlags uint64
	EventFlags        uint64
	ExpressionFlags   uint64
	LookupFlags       uint64
	PackageFlags      uint64
	WebFlags          uint64
)

// Resolution is what an UnknownCallback produces: the executor that should
// service an unknown command name, and whether the name was ambiguous.
type Resolution struct {
	Ambiguous bool
	Execute   ExecuteCallback
}

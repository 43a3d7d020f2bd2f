package bridge

import "fmt"

// AsynchronousContext is the request record handed to an AsynchronousCallback
// when a queued evaluation finishes. It is produced by one goroutine and
// consumed by the completion callback; it carries no locking of its own.
type AsynchronousContext struct {
	threadID          int64
	engineMode        EngineMode
	interpreter       Interpreter
	text              string
	engineFlags       EngineFlags
	substitutionFlags SubstitutionFlags
	eventFlags        EventFlags
	expressionFlags   ExpressionFlags
	callback          AsynchronousCallback
	clientData        ClientData

	returnCode ReturnCode
	result     any
	errorLine  int
}

// AsynchronousRequest holds the inputs of an asynchronous evaluation.
type AsynchronousRequest struct {
	ThreadID          int64
	EngineMode        EngineMode
	Interpreter       Interpreter
	Text              string
	EngineFlags       EngineFlags
	SubstitutionFlags SubstitutionFlags
	EventFlags        EventFlags
	ExpressionFlags   ExpressionFlags
	Callback          AsynchronousCallback
	ClientData        ClientData
}

// NewAsynchronousContext records req. The result starts as Ok with no value.
func NewAsynchronousContext(req AsynchronousRequest) *AsynchronousContext {
	return &AsynchronousContext{
		threadID:          req.ThreadID,
		engineMode:        req.EngineMode,
		interpreter:       req.Interpreter,
		text:              req.Text,
		engineFlags:       req.EngineFlags,
		substitutionFlags: req.SubstitutionFlags,
		eventFlags:        req.EventFlags,
		expressionFlags:   req.ExpressionFlags,
		callback:          req.Callback,
		clientData:        req.ClientData,
	}
}

// ThreadID returns the id of the thread that made the request.
func (c *AsynchronousContext) ThreadID() int64 { return c.threadID }

// EngineMode returns the requested engine mode.
func (c *AsynchronousContext) EngineMode() EngineMode { return c.engineMode }

// Interpreter returns the interpreter the text runs in.
func (c *AsynchronousContext) Interpreter() Interpreter { return c.interpreter }

// Text returns the script text being evaluated.
func (c *AsynchronousContext) Text() string { return c.text }

// EngineFlags returns the engine flags of the request.
func (c *AsynchronousContext) EngineFlags() EngineFlags { return c.engineFlags }

// SubstitutionFlags returns the substitution flags of the request.
func (c *AsynchronousContext) SubstitutionFlags() SubstitutionFlags { return c.substitutionFlags }

// EventFlags returns the event flags of the request.
func (c *AsynchronousContext) EventFlags() EventFlags { return c.eventFlags }

// ExpressionFlags returns the expression flags of the request.
func (c *AsynchronousContext) ExpressionFlags() ExpressionFlags { return c.expressionFlags }

// Callback returns the completion callback.
func (c *AsynchronousContext) Callback() AsynchronousCallback { return c.callback }

// ClientData returns the client data passed through to the callback.
func (c *AsynchronousContext) ClientData() ClientData { return c.clientData }

// ReturnCode returns the status recorded by SetResult.
func (c *AsynchronousContext) ReturnCode() ReturnCode { return c.returnCode }

// Result returns the value recorded by SetResult.
func (c *AsynchronousContext) Result() any { return c.result }

// ErrorLine returns the error line recorded by SetResult.
func (c *AsynchronousContext) ErrorLine() int { return c.errorLine }

// SetResult overwrites the result triple. The last call wins.
func (c *AsynchronousContext) SetResult(code ReturnCode, result any, errorLine int) {
	c.returnCode = code
	c.result = result
	c.errorLine = errorLine
}

// Outcome views the result triple as an Outcome. A failed result's message is
// its formatted value.
func (c *AsynchronousContext) Outcome() Outcome[any] {
	if c.returnCode == Ok {
		return Succeed(c.result)
	}
	o := Outcome[any]{Code: c.returnCode, Value: c.result}
	if c.result != nil {
		o.Message = fmt.Sprint(c.result)
	}
	return o
}

// Dispatch completes the context through its own callback. It panics with
// *MisuseError when the context was built without one.
func (c *AsynchronousContext) Dispatch() {
	b, err := NewAsynchronousBridge(c.callback)
	if err != nil {
		panic(&MisuseError{Kind: KindAsynchronous})
	}
	b.Complete(c)
}

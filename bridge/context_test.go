package bridge

import (
	"testing"
)

// ---------------------------------------------------------------------------
// AsynchronousContext
// ---------------------------------------------------------------------------

func TestAsynchronousContextCarriesRequest(t *testing.T) {
	cb := AsynchronousFunc(func(*AsynchronousContext) {})
	ctx := NewAsynchronousContext(AsynchronousRequest{
		ThreadID:          7,
		EngineMode:        EngineModeEvaluateScript,
		Interpreter:       testInterp,
		Text:              "puts hi",
		EngineFlags:       1,
		SubstitutionFlags: 2,
		EventFlags:        3,
		ExpressionFlags:   4,
		Callback:          cb,
		ClientData:        testClientData,
	})

	if ctx.ThreadID() != 7 || ctx.EngineMode() != EngineModeEvaluateScript || ctx.Text() != "puts hi" {
		t.Errorf("request fields not recorded: %+v", ctx)
	}
	if ctx.EngineFlags() != 1 || ctx.SubstitutionFlags() != 2 || ctx.EventFlags() != 3 || ctx.ExpressionFlags() != 4 {
		t.Error("flag fields not recorded")
	}
	if ctx.Interpreter() != Interpreter(testInterp) || ctx.ClientData() != ClientData(testClientData) {
		t.Error("references not recorded")
	}
	if ctx.Callback() == nil {
		t.Error("callback not recorded")
	}
	if ctx.ReturnCode() != Ok || ctx.Result() != nil || ctx.ErrorLine() != 0 {
		t.Error("fresh context should hold an empty Ok result")
	}
}

func TestAsynchronousContextSetResultOverwrites(t *testing.T) {
	ctx := NewAsynchronousContext(AsynchronousRequest{})

	ctx.SetResult(Error, "first failure", 3)
	ctx.SetResult(Ok, "42", 0)

	if ctx.ReturnCode() != Ok || ctx.Result() != "42" || ctx.ErrorLine() != 0 {
		t.Errorf("second SetResult did not overwrite: %s %v %d", ctx.ReturnCode(), ctx.Result(), ctx.ErrorLine())
	}
	if o := ctx.Outcome(); !o.OK() || o.Value != "42" {
		t.Errorf("Outcome() = %v", o)
	}

	ctx.SetResult(Error, "can't read \"x\"", 12)
	o := ctx.Outcome()
	if o.Code != Error || o.Message != "can't read \"x\"" {
		t.Errorf("failed Outcome() = %+v", o)
	}
}

func TestAsynchronousContextDispatch(t *testing.T) {
	rec := &recorder{}
	ctx := NewAsynchronousContext(AsynchronousRequest{Callback: rec})
	ctx.SetResult(Ok, "done", 0)
	ctx.Dispatch()

	got := rec.last()
	if got.method != "Complete" || got.args[0] != any(ctx) {
		t.Errorf("Dispatch delivered %v", got)
	}
}

func TestAsynchronousContextDispatchWithoutCallback(t *testing.T) {
	defer func() {
		if _, ok := recover().(*MisuseError); !ok {
			t.Error("expected *MisuseError panic")
		}
	}()
	NewAsynchronousContext(AsynchronousRequest{}).Dispatch()
}

// ---------------------------------------------------------------------------
// ShellCallbacks
// ---------------------------------------------------------------------------

func evalScript(result string) EvaluateScriptFunc {
	return func(Interpreter, string) Outcome[any] { return Succeed[any](result) }
}

func TestShellCallbacksTryAccessors(t *testing.T) {
	var nilShell *ShellCallbacks
	if _, ok := nilShell.TryEvaluateScript(); ok {
		t.Error("nil bundle should report no hooks")
	}

	loop, _ := NewInteractiveLoopBridge(&recorder{})
	s := NewShellCallbacks(ShellHooks{
		EvaluateScript:  evalScript("host"),
		InteractiveLoop: loop,
	})

	fn, ok := s.TryEvaluateScript()
	if !ok {
		t.Fatal("expected evaluate-script hook")
	}
	if o := fn(nil, ""); o.Value != "host" {
		t.Errorf("hook returned %v", o.Value)
	}
	if b, ok := s.TryInteractiveLoop(); !ok || b != loop {
		t.Error("expected the installed interactive loop bridge")
	}
	if _, ok := s.TryPreviewArgument(); ok {
		t.Error("preview hook should be empty")
	}
	if _, ok := s.TryUnknownArgument(); ok {
		t.Error("unknown-argument hook should be empty")
	}
	if _, ok := s.TryEvaluateFile(); ok {
		t.Error("evaluate-file hook should be empty")
	}
	if _, ok := s.TryEvaluateEncodedFile(); ok {
		t.Error("evaluate-encoded-file hook should be empty")
	}
}

func TestShellCallbacksPreExistingSurvivesDefaults(t *testing.T) {
	s := NewShellCallbacks(ShellHooks{EvaluateScript: evalScript("host")})
	s.CheckForPreExisting()

	if !s.HadEvaluateScript() || s.HadEvaluateFile() {
		t.Fatalf("Had flags wrong: script=%v file=%v", s.HadEvaluateScript(), s.HadEvaluateFile())
	}

	defaults := ShellHooks{
		EvaluateScript: evalScript("default"),
		EvaluateFile:   func(Interpreter, string) Outcome[any] { return Succeed[any]("file") },
	}
	s.SetNewOrResetPreExisting(defaults, false)

	fn, _ := s.TryEvaluateScript()
	if o := fn(nil, ""); o.Value != "host" {
		t.Errorf("pre-existing hook replaced, got %v", o.Value)
	}
	if _, ok := s.TryEvaluateFile(); !ok {
		t.Error("empty slot should take the default")
	}

	// A second check is a no-op, so the new file hook is not marked pre-existing.
	s.CheckForPreExisting()
	if s.HadEvaluateFile() {
		t.Error("CheckForPreExisting ran twice")
	}

	s.SetNewOrResetPreExisting(defaults, true)
	fn, _ = s.TryEvaluateScript()
	if o := fn(nil, ""); o.Value != "default" {
		t.Errorf("reset did not overwrite, got %v", o.Value)
	}
}

func TestShellCallbacksClone(t *testing.T) {
	s := NewShellCallbacks(ShellHooks{EvaluateScript: evalScript("host")})
	s.Name = "shell"
	s.CheckForPreExisting()

	c := s.Clone()
	c.SetEvaluateScript(nil)
	c.Name = "copy"

	if _, ok := s.TryEvaluateScript(); !ok {
		t.Error("clone mutation leaked into the original")
	}
	if !c.HadEvaluateScript() {
		t.Error("clone lost Had flags")
	}
	if s.Name != "shell" {
		t.Errorf("original name = %q", s.Name)
	}
	if (*ShellCallbacks)(nil).Clone() != nil {
		t.Error("nil Clone should be nil")
	}
}

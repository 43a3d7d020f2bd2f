package bridge

// ---------------------------------------------------------------------------
// Shell customization hooks
// ---------------------------------------------------------------------------

// PreviewArgumentFunc inspects a shell argument before the shell handles it.
type PreviewArgumentFunc func(interp Interpreter, clientData ClientData, args Arguments, index int) Outcome[any]

// UnknownArgumentFunc handles a shell argument the shell did not recognize.
type UnknownArgumentFunc func(interp Interpreter, clientData ClientData, args Arguments, index int) Outcome[any]

// EvaluateScriptFunc replaces the shell's script evaluation.
type EvaluateScriptFunc func(interp Interpreter, text string) Outcome[any]

// EvaluateFileFunc replaces the shell's file evaluation.
type EvaluateFileFunc func(interp Interpreter, fileName string) Outcome[any]

// EvaluateEncodedFileFunc replaces the shell's file evaluation when an
// explicit text encoding was requested.
type EvaluateEncodedFileFunc func(interp Interpreter, encoding string, fileName string) Outcome[any]

// ShellHooks is the set of hooks applied by SetNewOrResetPreExisting.
type ShellHooks struct {
	PreviewArgument     PreviewArgumentFunc
	UnknownArgument     UnknownArgumentFunc
	EvaluateScript      EvaluateScriptFunc
	EvaluateFile        EvaluateFileFunc
	EvaluateEncodedFile EvaluateEncodedFileFunc
	InteractiveLoop     *InteractiveLoopBridge
}

// ShellCallbacks bundles the optional hooks a host installs into the
// interactive shell. Every slot may be empty. The Had flags remember which
// slots were already populated when CheckForPreExisting first ran, so later
// defaults do not clobber them.
//
// ShellCallbacks is not safe for concurrent mutation.
type ShellCallbacks struct {
	Name        string
	Group       string
	Description string
	ClientData  ClientData

	WhatIf        bool
	StopOnUnknown bool

	hooks ShellHooks

	hadPreviewArgument     bool
	hadUnknownArgument     bool
	hadEvaluateScript      bool
	hadEvaluateFile        bool
	hadEvaluateEncodedFile bool
	hadInteractiveLoop     bool
	initialized            bool
}

// NewShellCallbacks returns a bundle populated with hooks.
func NewShellCallbacks(hooks ShellHooks) *ShellCallbacks {
	return &ShellCallbacks{hooks: hooks}
}

// SetPreviewArgument installs the preview hook.
func (s *ShellCallbacks) SetPreviewArgument(fn PreviewArgumentFunc) { s.hooks.PreviewArgument = fn }

// SetUnknownArgument installs the unknown-argument hook.
func (s *ShellCallbacks) SetUnknownArgument(fn UnknownArgumentFunc) { s.hooks.UnknownArgument = fn }

// SetEvaluateScript installs the script evaluation hook.
func (s *ShellCallbacks) SetEvaluateScript(fn EvaluateScriptFunc) { s.hooks.EvaluateScript = fn }

// SetEvaluateFile installs the file evaluation hook.
func (s *ShellCallbacks) SetEvaluateFile(fn EvaluateFileFunc) { s.hooks.EvaluateFile = fn }

// SetEvaluateEncodedFile installs the encoded file evaluation hook.
func (s *ShellCallbacks) SetEvaluateEncodedFile(fn EvaluateEncodedFileFunc) { s.hooks.EvaluateEncodedFile = fn }

// SetInteractiveLoop installs the interactive loop bridge.
func (s *ShellCallbacks) SetInteractiveLoop(b *InteractiveLoopBridge) { s.hooks.InteractiveLoop = b }

// TryPreviewArgument returns the preview hook, if one is installed.
func (s *ShellCallbacks) TryPreviewArgument() (PreviewArgumentFunc, bool) {
	if s == nil || s.hooks.PreviewArgument == nil {
		return nil, false
	}
	return s.hooks.PreviewArgument, true
}

// TryUnknownArgument returns the unknown-argument hook, if one is installed.
func (s *ShellCallbacks) TryUnknownArgument() (UnknownArgumentFunc, bool) {
	if s == nil || s.hooks.UnknownArgument == nil {
		return nil, false
	}
	return s.hooks.UnknownArgument, true
}

// TryEvaluateScript returns the script evaluation hook, if one is installed.
func (s *ShellCallbacks) TryEvaluateScript() (EvaluateScriptFunc, bool) {
	if s == nil || s.hooks.EvaluateScript == nil {
		return nil, false
	}
	return s.hooks.EvaluateScript, true
}

// TryEvaluateFile returns the file evaluation hook, if one is installed.
func (s *ShellCallbacks) TryEvaluateFile() (EvaluateFileFunc, bool) {
	if s == nil || s.hooks.EvaluateFile == nil {
		return nil, false
	}
	return s.hooks.EvaluateFile, true
}

// TryEvaluateEncodedFile returns the encoded file evaluation hook, if one is installed.
func (s *ShellCallbacks) TryEvaluateEncodedFile() (EvaluateEncodedFileFunc, bool) {
	if s == nil || s.hooks.EvaluateEncodedFile == nil {
		return nil, false
	}
	return s.hooks.EvaluateEncodedFile, true
}

// TryInteractiveLoop returns the interactive loop bridge, if one is installed.
func (s *ShellCallbacks) TryInteractiveLoop() (*InteractiveLoopBridge, bool) {
	if s == nil || s.hooks.InteractiveLoop == nil {
		return nil, false
	}
	return s.hooks.InteractiveLoop, true
}

// CheckForPreExisting records which hooks are already installed. Only the
// first call has any effect.
func (s *ShellCallbacks) CheckForPreExisting() {
	if s.initialized {
		return
	}
	s.hadPreviewArgument = s.hooks.PreviewArgument != nil
	s.hadUnknownArgument = s.hooks.UnknownArgument != nil
	s.hadEvaluateScript = s.hooks.EvaluateScript != nil
	s.hadEvaluateFile = s.hooks.EvaluateFile != nil
	s.hadEvaluateEncodedFile = s.hooks.EvaluateEncodedFile != nil
	s.hadInteractiveLoop = s.hooks.InteractiveLoop != nil
	s.initialized = true
}

// SetNewOrResetPreExisting installs hooks into every slot that was empty at
// CheckForPreExisting time. With reset, every slot is overwritten.
func (s *ShellCallbacks) SetNewOrResetPreExisting(hooks ShellHooks, reset bool) {
	if reset || !s.hadPreviewArgument {
		s.hooks.PreviewArgument = hooks.PreviewArgument
	}
	if reset || !s.hadUnknownArgument {
		s.hooks.UnknownArgument = hooks.UnknownArgument
	}
	if reset || !s.hadEvaluateScript {
		s.hooks.EvaluateScript = hooks.EvaluateScript
	}
	if reset || !s.hadEvaluateFile {
		s.hooks.EvaluateFile = hooks.EvaluateFile
	}
	if reset || !s.hadEvaluateEncodedFile {
		s.hooks.EvaluateEncodedFile = hooks.EvaluateEncodedFile
	}
	if reset || !s.hadInteractiveLoop {
		s.hooks.InteractiveLoop = hooks.InteractiveLoop
	}
}

// HadPreviewArgument reports whether a preview hook was installed
// before CheckForPreExisting ran.
func (s *ShellCallbacks) HadPreviewArgument() bool { return s.hadPreviewArgument }

// HadUnknownArgument reports whether an unknown-argument hook was installed
// before CheckForPreExisting ran.
func (s *ShellCallbacks) HadUnknownArgument() bool { return s.hadUnknownArgument }

// HadEvaluateScript reports whether a script evaluation hook was installed
// before CheckForPreExisting ran.
func (s *ShellCallbacks) HadEvaluateScript() bool { return s.hadEvaluateScript }

// HadEvaluateFile reports whether a file evaluation hook was installed
// before CheckForPreExisting ran.
func (s *ShellCallbacks) HadEvaluateFile() bool { return s.hadEvaluateFile }

// HadEvaluateEncodedFile reports whether an encoded file evaluation hook
// was installed before CheckForPreExisting ran.
func (s *ShellCallbacks) HadEvaluateEncodedFile() bool { return s.hadEvaluateEncodedFile }

// HadInteractiveLoop reports whether an interactive loop bridge was installed
// before CheckForPreExisting ran.
func (s *ShellCallbacks) HadInteractiveLoop() bool { return s.hadInteractiveLoop }

// Clone returns an independent copy, Had flags included. Hooks are shared.
func (s *ShellCallbacks) Clone() *ShellCallbacks {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

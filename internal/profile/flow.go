package profile

// Stage is the position of a Flow.
type Stage int

const (
	// StageCollecting accepts field edits.
	StageCollecting Stage = iota
	// StageShowing holds a generated result.
	StageShowing
)

func (s Stage) String() string {
	switch s {
	case StageCollecting:
		return "collecting-input"
	case StageShowing:
		return "showing-results"
	default:
		return "unknown"
	}
}

// Flow is the interactive generate / regenerate cycle around Generate.
// The zero value is a fresh flow using the English templates.
type Flow struct {
	Stage     Stage
	Inputs    Inputs
	Result    *Generated
	Templates *Templates
}

// NewFlow starts a flow in the collecting stage with the given templates.
func NewFlow(t Templates) *Flow {
	return &Flow{Templates: &t}
}

// SetInputs replaces the form values. It is ignored while results are shown.
func (f *Flow) SetInputs(in Inputs) bool {
	if f.Stage != StageCollecting {
		return false
	}
	f.Inputs = in
	return true
}

// Generate runs the generator on the current inputs and moves to the
// showing stage. Calling it while already showing is a no-op.
func (f *Flow) Generate() *Generated {
	if f.Stage == StageShowing {
		return f.Result
	}
	t := English
	if f.Templates != nil {
		t = *f.Templates
	}
	g := t.Generate(f.Inputs)
	f.Result = &g
	f.Stage = StageShowing
	return f.Result
}

// Regenerate returns to the collecting stage, dropping the displayed result
// but keeping the last entered inputs.
func (f *Flow) Regenerate() {
	if f.Stage != StageShowing {
		return
	}
	f.Result = nil
	f.Stage = StageCollecting
}

// Reset discards inputs and result, as when the flow is closed.
func (f *Flow) Reset() {
	f.Stage = StageCollecting
	f.Inputs = Inputs{}
	f.Result = nil
}

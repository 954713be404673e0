package phase

// ModulePhase tracks how far one syntax tree has progressed.
//
// Phase progression is sequential:
// - NotStarted -> Decoded -> Declared -> Bound -> Evaluated
//
// Declared and Bound apply to a whole submission at once, but each tree
// records them so the pipeline can refuse to bind a tree twice.
type ModulePhase int

const (
	PhaseNotStarted ModulePhase = iota // Tree path known but not read
	PhaseDecoded                       // Syntax tree decoded
	PhaseDeclared                      // Declarations entered into the global scope
	PhaseBound                         // Bodies bound and lowered
	PhaseEvaluated                     // Entry point has run
)

// PhasePrerequisites maps each phase to its required predecessor phase
var PhasePrerequisites = map[ModulePhase]ModulePhase{
	PhaseDecoded:   PhaseNotStarted,
	PhaseDeclared:  PhaseDecoded,
	PhaseBound:     PhaseDeclared,
	PhaseEvaluated: PhaseBound,
}

func (p ModulePhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseDecoded:
		return "Decoded"
	case PhaseDeclared:
		return "Declared"
	case PhaseBound:
		return "Bound"
	case PhaseEvaluated:
		return "Evaluated"
	default:
		return "Unknown"
	}
}

package gen

import (
	"fmt"
	"slices"

	"builder-generator/internal/common"
	"builder-generator/internal/match"
)

//go:generate go tool stringer -type=Stage -linecomment -output=stage_string.go

// Stage is one composable part of builder synthesis.
type Stage int

const (
	StageFactory     Stage = iota // factory
	StageSetters                  // setters
	StageBuild                    // build
	StageOptionAware              // option-aware
)

// AllStages lists every stage in emission order.
var AllStages = []Stage{StageFactory, StageSetters, StageBuild, StageOptionAware}

// ParseStage parses a stage name as printed by Stage.String.
func ParseStage(s string) (Stage, error) {
	for _, st := range AllStages {
		if st.String() == s {
			return st, nil
		}
	}

	names := make([]string, len(AllStages))
	for i, st := range AllStages {
		names[i] = st.String()
	}

	return 0, fmt.Errorf("unknown stage %q%s", s, match.Hint(s, names))
}

// ParseStages parses a list of stage names.
func ParseStages(names []string) ([]Stage, error) {
	out := make([]Stage, 0, len(names))

	for _, n := range names {
		st, err := ParseStage(n)
		if err != nil {
			return nil, err
		}

		out = append(out, st)
	}

	return common.Dedupe(out), nil
}

// ValidateStages checks that emitting stages have the factory stage they build on.
func ValidateStages(stages []Stage) error {
	if len(stages) == 0 {
		return fmt.Errorf("no stages selected")
	}

	if slices.Contains(stages, StageFactory) {
		return nil
	}

	for _, st := range stages {
		if st == StageSetters || st == StageBuild {
			return fmt.Errorf("stage %s requires stage %s", st, StageFactory)
		}
	}

	return fmt.Errorf("stage %s is required", StageFactory)
}

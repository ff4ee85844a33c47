package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStepResolved checks that the pipeline contains a step of the given
// kind bound to exactly these input and output names.
func AssertStepResolved(t *testing.T, result *HarnessResult, kind string, inputs, outputs []string) {
	t.Helper()
	require.NoError(t, result.Err)
	require.NotNil(t, result.Pipeline)

	for _, s := range result.Pipeline.Steps {
		if s.Kind == kind && assert.ObjectsAreEqual(inputs, s.Inputs) && assert.ObjectsAreEqual(outputs, s.Outputs) {
			return
		}
	}
	require.Failf(t, "step not resolved",
		"no %s step with inputs %v and outputs %v in %+v", kind, inputs, outputs, result.Pipeline.Plan().Steps)
}

// StepIndex returns the position of the first step whose outputs include
// name, or -1.
func StepIndex(result *HarnessResult, name string) int {
	if result.Pipeline == nil {
		return -1
	}
	for i, s := range result.Pipeline.Steps {
		for _, out := range s.Outputs {
			if out == name {
				return i
			}
		}
	}
	return -1
}

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireProblem checks that at least one collected problem mentions the
// given substring in its summary. It abstracts the diagnostic shape, making
// tests more resilient to message rewording at the detail level.
func RequireProblem(t *testing.T, res *Result, substring string) {
	t.Helper()

	for _, diag := range res.Diags {
		if strings.Contains(diag.Summary, substring) {
			return
		}
	}
	require.Failf(t, "expected problem not reported",
		"no problem summary contains %q; got: %s", substring, res.Diags.Error())
}

package testutils

import (
	"fmt"

	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T the toolkit reports failures through.
type TestingT interface {
	require.TestingT
	Helper()
}

// fail reports a failure and stops the test.
func fail(t TestingT, format string, args ...any) {
	t.Helper()
	require.FailNow(t, fmt.Sprintf(format, args...))
}

package envutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandWindowsEnv(t *testing.T) {
	t.Setenv("WSTEST_HOME", "/home/tester")
	t.Setenv("WSTEST_NAME", "tester")

	cases := []struct {
		in   string
		want string
	}{
		{`%WSTEST_HOME%/cache`, "/home/tester/cache"},
		{"$WSTEST_HOME/cache", "/home/tester/cache"},
		{"${WSTEST_HOME}/cache", "/home/tester/cache"},
		{`%WSTEST_HOME%/%WSTEST_NAME%`, "/home/tester/tester"},
		{"no variables here", "no variables here"},
		{`%WSTEST_UNDEFINED%/x`, "/x"},
		{"100%", "100%"},   // lone percent survives
		{"50%%off", "50%off"}, // doubled percent is a literal
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExpandWindowsEnv(tc.in), "input %q", tc.in)
	}
}

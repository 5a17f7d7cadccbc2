package rst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDisplayMarker(t *testing.T) {
	tests := []struct {
		line string
		on   bool
		ok   bool
	}{
		{"github display on", true, true},
		{"github display off", false, true},
		{"  github   display   on  ", true, true},
		{"github display", false, false},
		{"github display maybe", false, false},
		{"github display on please", false, false},
		{"gitlab display on", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		on, ok := parseDisplayMarker(tt.line)
		require.Equal(t, tt.ok, ok, "%q", tt.line)
		require.Equal(t, tt.on, on, "%q", tt.line)
	}
}

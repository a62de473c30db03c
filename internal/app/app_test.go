package app

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{name: "no commit", version: "dev", expected: "dev"},
		{name: "short commit", version: "v1.0.0", commit: "abc", expected: "v1.0.0 (abc)"},
		{name: "long commit", version: "v1.0.0", commit: "0123456789abcdef", expected: "v1.0.0 (0123456)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VersionString(tt.version, tt.commit))
		})
	}
}

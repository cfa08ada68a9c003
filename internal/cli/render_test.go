package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"ascii", "day", 6, "day   "},
		{"hanja counts double", "庚午", 6, "庚午  "},
		{"hangul counts double", "경오", 5, "경오 "},
		{"colour escapes are free", "\x1b[32m甲\x1b[0m wood", 9, "\x1b[32m甲\x1b[0m wood  "},
		{"overflow keeps a gap", "海中金海中金", 8, "海中金海中金 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pad(tt.in, tt.width))
		})
	}
}

package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{"/tmp/config.json"}},
		{"linux", "xdg-open", []string{"/tmp/config.json"}},
		{"freebsd", "xdg-open", []string{"/tmp/config.json"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "/tmp/config.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "/tmp/config.json")
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

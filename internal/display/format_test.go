package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"4K texture", 64 * 1024 * 1024, "64.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{0, "texture", "0 textures"},
		{1, "texture", "1 texture"},
		{12, "texture", "12 textures"},
		{2, "mesh", "2 meshes"},
		{1, "mesh", "1 mesh"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.n, tt.noun))
		})
	}
}

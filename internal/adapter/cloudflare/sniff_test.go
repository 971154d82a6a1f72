package cloudflare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "jpeg magic bytes",
			data:     []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			expected: "image/jpeg",
		},
		{
			name:     "png magic bytes",
			data:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00},
			expected: "image/png",
		},
		{
			name:     "gif87a",
			data:     []byte("GIF87a......"),
			expected: "image/gif",
		},
		{
			name:     "gif89a",
			data:     []byte("GIF89a......"),
			expected: "image/gif",
		},
		{
			name:     "webp riff container",
			data:     []byte("RIFF\x00\x00\x00\x00WEBPVP8 "),
			expected: "image/webp",
		},
		{
			name:     "riff without webp marker falls back to jpeg",
			data:     []byte("RIFF\x00\x00\x00\x00WAVEfmt "),
			expected: "image/jpeg",
		},
		{
			name:     "unknown binary defaults to jpeg",
			data:     []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B},
			expected: "image/jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, err := detectContentType(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, contentType)
		})
	}
}

func TestDetectContentType_RejectsEmpty(t *testing.T) {
	_, err := detectContentType(nil)
	assert.ErrorIs(t, err, errEmptyImage)

	_, err = detectContentType([]byte{})
	assert.ErrorIs(t, err, errEmptyImage)
}

func TestDetectContentType_RejectsVectorContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "svg tag", data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)},
		{name: "xml declaration", data: []byte(`<?xml version="1.0"?><svg></svg>`)},
		{name: "svg with leading whitespace", data: []byte("  \n\t<svg></svg>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := detectContentType(tt.data)
			assert.ErrorIs(t, err, errUnsupportedImage)
		})
	}
}

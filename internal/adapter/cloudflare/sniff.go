package cloudflare

import (
	"bytes"
	"errors"
)

var (
	errEmptyImage       = errors.New("image content is empty")
	errUnsupportedImage = errors.New("unsupported image format: vector/XML content is not accepted")
)

var (
	jpegMagic  = []byte{0xFF, 0xD8, 0xFF}
	pngMagic   = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	gif87Magic = []byte("GIF87a")
	gif89Magic = []byte("GIF89a")
	riffMagic  = []byte("RIFF")
	webpMarker = []byte("WEBP")
)

// detectContentType определяет MIME-тип изображения по сигнатуре первых байт.
// SVG/XML отклоняется сразу: провайдер не принимает векторные изображения.
// Нераспознанный бинарный контент считаем JPEG — пусть провайдер сам решает,
// его валидация строже нашей.
func detectContentType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyImage
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<svg")) {
		return "", errUnsupportedImage
	}

	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return "image/jpeg", nil
	case bytes.HasPrefix(data, pngMagic):
		return "image/png", nil
	case bytes.HasPrefix(data, gif87Magic), bytes.HasPrefix(data, gif89Magic):
		return "image/gif", nil
	case len(data) >= 12 && bytes.HasPrefix(data, riffMagic) && bytes.Equal(data[8:12], webpMarker):
		return "image/webp", nil
	default:
		return "image/jpeg", nil
	}
}

package imagegate

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies one of the supported bitmap image formats.
type Format int

const (
	FormatUnknown Format = iota
	FormatGIF
	FormatPNG
	FormatJPEG
)

// String returns the lowercase format name ("gif", "png", "jpeg").
func (f Format) String() string {
	switch f {
	case FormatGIF:
		return "gif"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// MIME returns the canonical MIME type for the format, or empty string
// for FormatUnknown.
func (f Format) MIME() string {
	switch f {
	case FormatGIF:
		return MimeGIF
	case FormatPNG:
		return MimePNG
	case FormatJPEG:
		return MimeJPEG
	default:
		return ""
	}
}

// formatForExtension maps lowercase extensions (without the dot) to
// their declared format. Both "jpg" and "jpeg" declare JPEG.
var formatForExtension = map[string]Format{
	"gif":  FormatGIF,
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
}

// FormatForExtension returns the format declared by a file extension
// (without the dot, case-insensitive). Returns FormatUnknown for
// anything outside gif, png, jpg, jpeg.
func FormatForExtension(ext string) Format {
	return formatForExtension[strings.ToLower(ext)]
}

// ExtensionOf returns the lowercase extension of path without the
// leading dot, or empty string if the path has no extension.
func ExtensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// formatSignature defines a magic-byte signature for a format.
type formatSignature struct {
	format Format
	magic  []byte
}

// formatSignatures contains the leading-byte signatures for the
// supported formats, most specific first.
var formatSignatures = []formatSignature{
	{FormatPNG, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
	{FormatJPEG, []byte{0xFF, 0xD8, 0xFF}},
	{FormatGIF, []byte("GIF87a")},
	{FormatGIF, []byte("GIF89a")},
}

// DetectFormat determines the format implied by a file's leading bytes,
// independent of its name. Returns FormatUnknown when no signature
// matches.
func DetectFormat(data []byte) Format {
	for _, sig := range formatSignatures {
		if len(data) >= len(sig.magic) && bytes.Equal(data[:len(sig.magic)], sig.magic) {
			return sig.format
		}
	}
	return FormatUnknown
}

// formatForName maps the format tag returned by image.DecodeConfig to a
// Format.
func formatForName(name string) Format {
	switch name {
	case "gif":
		return FormatGIF
	case "png":
		return FormatPNG
	case "jpeg":
		return FormatJPEG
	default:
		return FormatUnknown
	}
}

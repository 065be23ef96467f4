package imagegate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MIME labels recognized by the validator.
const (
	MimeGIF  = "image/gif"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"

	// Legacy aliases normalized to the canonical forms above.
	MimePJPEG = "image/pjpeg"
	MimeXPNG  = "image/x-png"
)

// ErrUnreadable indicates the file could not be opened or read at all,
// as opposed to being readable but unclassifiable.
var ErrUnreadable = errors.New("file is not readable")

// MimeDetector inspects a file's content and returns its MIME label.
// An empty label means the content could not be classified.
type MimeDetector func(path string) (string, error)

// MimeSniffer determines a normalized, lowercase MIME type for a file
// from its byte content, never from its name.
type MimeSniffer struct {
	detect MimeDetector
}

// NewMimeSniffer creates a sniffer backed by the mimetype
// content-detection library.
func NewMimeSniffer() *MimeSniffer {
	return &MimeSniffer{detect: libraryDetect}
}

// NewMimeSnifferWithDetector creates a sniffer with a custom detector.
// A nil detector routes every sniff through the manual signature
// fallback.
func NewMimeSnifferWithDetector(detect MimeDetector) *MimeSniffer {
	return &MimeSniffer{detect: detect}
}

// libraryDetect classifies file content with the mimetype library.
func libraryDetect(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	label := m.String()
	// Strip parameters like "; charset=utf-8".
	if idx := strings.Index(label, ";"); idx > 0 {
		label = label[:idx]
	}
	return label, nil
}

// Sniff returns the normalized MIME type for the file. It returns an
// ErrUnreadable-wrapped error if the file cannot be opened for reading;
// an empty string with nil error means readable but unrecognized.
func (s *MimeSniffer) Sniff(path string) (string, error) {
	if s.detect != nil {
		if label, err := s.detect(path); err == nil && label != "" {
			return NormalizeMime(label), nil
		}
		// Detector unavailable or inconclusive: fall through to the
		// manual signature inspection, which also surfaces open errors.
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	head := make([]byte, 6)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return NormalizeMime(sniffHead(head[:n])), nil
}

// sniffHead classifies the first bytes of a file by signature. Returns
// empty string when nothing matches.
func sniffHead(head []byte) string {
	switch {
	case len(head) >= 3 && bytes.Equal(head[:3], []byte{0xFF, 0xD8, 0xFF}):
		return MimeJPEG
	case len(head) >= 6 && bytes.Equal(head[:6], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}):
		return MimePNG
	case len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a"))):
		return MimeGIF
	default:
		return ""
	}
}

// NormalizeMime lowercases a MIME label and folds known aliases to
// their canonical forms.
func NormalizeMime(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case MimePJPEG:
		return MimeJPEG
	case MimeXPNG:
		return MimePNG
	default:
		return label
	}
}

// recognizedMime reports whether a normalized label is one of the
// supported image types.
func recognizedMime(label string) bool {
	switch label {
	case MimeGIF, MimePNG, MimeJPEG:
		return true
	default:
		return false
	}
}

package imagegate

import (
	"errors"
	"io"
	"os"
)

// SignatureDetector reads a file and reports the format implied by its
// binary layout. Modeled as an optional capability: a nil detector
// routes sniffing through the dimension probe's header parse instead.
type SignatureDetector func(path string) (Format, error)

// SignatureSniffer determines a file's true format from its magic
// bytes, independent of its name.
type SignatureSniffer struct {
	detect SignatureDetector
	probe  *DimensionProbe
}

// NewSignatureSniffer creates a sniffer with the built-in magic-byte
// detector and the given probe as fallback.
func NewSignatureSniffer(probe *DimensionProbe) *SignatureSniffer {
	return &SignatureSniffer{detect: detectFormatFromFile, probe: probe}
}

// NewSignatureSnifferWithDetector creates a sniffer with a custom
// detector. Pass nil to exercise the probe fallback.
func NewSignatureSnifferWithDetector(detect SignatureDetector, probe *DimensionProbe) *SignatureSniffer {
	return &SignatureSniffer{detect: detect, probe: probe}
}

// detectFormatFromFile reads the minimal header bytes and matches them
// against the known signatures.
func detectFormatFromFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	head := make([]byte, 16)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}

	return DetectFormat(head[:n]), nil
}

// Sniff returns the format implied by the file's binary layout.
// FormatUnknown means undetermined; callers must reject it rather than
// treating it as a pass.
func (s *SignatureSniffer) Sniff(path string) Format {
	if s.detect != nil {
		format, err := s.detect(path)
		if err != nil {
			return FormatUnknown
		}
		return format
	}

	// Detector unavailable: the dimension probe already parses the same
	// header fields, so derive the type from it.
	if s.probe != nil {
		info, err := s.probe.Probe(path)
		if err != nil {
			return FormatUnknown
		}
		return info.Format
	}

	return FormatUnknown
}

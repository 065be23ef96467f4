package imagegate

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// ScanStatus is the outcome of a metadata scan.
type ScanStatus int

const (
	// ScanNotApplicable means no metadata could be extracted, either
	// because no extractor is available or because the file carries
	// none. It is not a failure.
	ScanNotApplicable ScanStatus = iota

	// ScanClean means metadata was extracted and no pattern matched.
	ScanClean

	// ScanSuspicious means at least one malicious-code pattern matched.
	ScanSuspicious
)

// ScanReport is the result of scanning a file's embedded metadata.
type ScanReport struct {
	Status ScanStatus

	// Matches holds the names of the matched patterns. In non-verbose
	// mode it contains at most the first match.
	Matches []string
}

// MetadataExtractor returns a human-readable dump of a file's embedded
// metadata. Modeled as an optional capability: a nil extractor makes
// every scan report ScanNotApplicable.
type MetadataExtractor func(r io.Reader) (string, error)

// MetadataScanner extracts embedded metadata from JPEG files and scans
// its serialized text for known malicious-code patterns.
//
// Scanning the printed dump rather than individual fields is
// deliberate: patterns surfacing in nested or printed substructures are
// still caught. This is a heuristic defense-in-depth measure, not a
// guarantee.
type MetadataScanner struct {
	extract MetadataExtractor
}

// NewMetadataScanner creates a scanner backed by EXIF extraction.
func NewMetadataScanner() *MetadataScanner {
	return &MetadataScanner{extract: extractExif}
}

// NewMetadataScannerWithExtractor creates a scanner with a custom
// extractor. Pass nil to disable extraction entirely.
func NewMetadataScannerWithExtractor(extract MetadataExtractor) *MetadataScanner {
	return &MetadataScanner{extract: extract}
}

// extractExif decodes EXIF metadata and serializes it to a key/value
// text dump.
func extractExif(r io.Reader) (string, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return "", err
	}
	return x.String(), nil
}

// suspiciousCalls are the function names scanned for in pass 1. A name
// counts only when preceded by a non-word character and immediately
// followed by an opening parenthesis.
var suspiciousCalls = []string{"eval", "system", "exec", "shell_exec", "passthru", "base64_decode"}

var callPatterns = compileCallPatterns()

func compileCallPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(suspiciousCalls))
	for _, name := range suspiciousCalls {
		patterns[name] = regexp.MustCompile(`(?i)\W` + regexp.QuoteMeta(name) + `\(`)
	}
	return patterns
}

// scriptTagPattern confirms a "<script" substring hit is a real tag.
var scriptTagPattern = regexp.MustCompile(`(?i)<script\b`)

// Scan extracts and scans the file's embedded metadata. In verbose mode
// the report carries every matched pattern name; otherwise scanning
// stops at the first match.
func (s *MetadataScanner) Scan(path string, verbose bool) (ScanReport, error) {
	if s.extract == nil {
		return ScanReport{Status: ScanNotApplicable}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return ScanReport{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	dump, err := s.extract(f)
	if err != nil || dump == "" {
		// No metadata present, or extraction not possible here.
		return ScanReport{Status: ScanNotApplicable}, nil
	}

	return scanDump(dump, verbose), nil
}

// scanDump runs the two pattern passes over the serialized metadata.
func scanDump(dump string, verbose bool) ScanReport {
	lower := strings.ToLower(dump)
	var matches []string

	// Pass 1: function-call patterns.
	for _, name := range suspiciousCalls {
		if !strings.Contains(lower, name) {
			continue
		}
		if callPatterns[name].MatchString(dump) {
			matches = append(matches, name+"(")
			if !verbose {
				return ScanReport{Status: ScanSuspicious, Matches: matches}
			}
		}
	}

	// Pass 2: injected-markup patterns.
	if strings.Contains(lower, "<script") && scriptTagPattern.MatchString(dump) {
		matches = append(matches, "<script")
		if !verbose {
			return ScanReport{Status: ScanSuspicious, Matches: matches}
		}
	}
	if strings.Contains(dump, "<%") {
		matches = append(matches, "<%")
		if !verbose {
			return ScanReport{Status: ScanSuspicious, Matches: matches}
		}
	}
	if strings.Contains(lower, "<?php") {
		matches = append(matches, "<?php")
		if !verbose {
			return ScanReport{Status: ScanSuspicious, Matches: matches}
		}
	}

	if len(matches) > 0 {
		return ScanReport{Status: ScanSuspicious, Matches: matches}
	}
	return ScanReport{Status: ScanClean}
}

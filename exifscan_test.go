package imagegate

import (
	"errors"
	"io"
	"testing"
)

func TestScanDumpFunctionCalls(t *testing.T) {
	tests := []struct {
		name     string
		dump     string
		expected ScanStatus
	}{
		{
			name:     "eval call",
			dump:     "Software: eval(base64_decode($payload))",
			expected: ScanSuspicious,
		},
		{
			name:     "system call",
			dump:     "Artist: x; system('rm -rf /')",
			expected: ScanSuspicious,
		},
		{
			name:     "exec call uppercase",
			dump:     "Comment: <x>EXEC(whoami)</x>",
			expected: ScanSuspicious,
		},
		{
			name:     "shell_exec call",
			dump:     "Model: ;shell_exec($cmd)",
			expected: ScanSuspicious,
		},
		{
			name:     "passthru call",
			dump:     "Copyright: a passthru(ls) b",
			expected: ScanSuspicious,
		},
		{
			// The name embedded in a longer word is preceded by a word
			// character: an incidental textual mention, not a call.
			name:     "eval inside a word",
			dump:     "Software: medieval(paintings) archive",
			expected: ScanClean,
		},
		{
			// Name without an opening parenthesis right after it.
			name:     "name without call syntax",
			dump:     "Comment: approval of the system pending",
			expected: ScanClean,
		},
		{
			name:     "ordinary camera dump",
			dump:     "Make: Canon\nModel: EOS 5D\nDateTime: 2024:03:01 10:00:00",
			expected: ScanClean,
		},
		{
			name:     "empty dump",
			dump:     "",
			expected: ScanClean,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := scanDump(tt.dump, false)
			if report.Status != tt.expected {
				t.Errorf("scanDump() = %v, want %v (matches: %v)", report.Status, tt.expected, report.Matches)
			}
		})
	}
}

func TestScanDumpMarkupPatterns(t *testing.T) {
	tests := []struct {
		name     string
		dump     string
		expected ScanStatus
	}{
		{
			name:     "script tag",
			dump:     "Comment: <script>alert(1)</script>",
			expected: ScanSuspicious,
		},
		{
			name:     "script tag uppercase",
			dump:     "Comment: <SCRIPT src=x>",
			expected: ScanSuspicious,
		},
		{
			// Substring hit without the regex confirmation: "<scripted"
			// continues with a word character, so \b does not match.
			name:     "scripted word",
			dump:     "Comment: a <scripted> scene",
			expected: ScanClean,
		},
		{
			name:     "legacy inline code marker",
			dump:     "Comment: <% Response.Write(1) %>",
			expected: ScanSuspicious,
		},
		{
			name:     "server-side code tag",
			dump:     "Comment: <?php phpinfo(); ?>",
			expected: ScanSuspicious,
		},
		{
			name:     "harmless angle brackets",
			dump:     "Comment: a < b and b > c",
			expected: ScanClean,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := scanDump(tt.dump, false)
			if report.Status != tt.expected {
				t.Errorf("scanDump() = %v, want %v (matches: %v)", report.Status, tt.expected, report.Matches)
			}
		})
	}
}

func TestScanDumpVerboseCollectsAll(t *testing.T) {
	dump := "Comment: eval(x) system(y) <script>z</script> <?php a ?>"

	verbose := scanDump(dump, true)
	if verbose.Status != ScanSuspicious {
		t.Fatalf("expected suspicious, got %v", verbose.Status)
	}
	if len(verbose.Matches) != 4 {
		t.Errorf("verbose matches = %v, want 4 entries", verbose.Matches)
	}

	terse := scanDump(dump, false)
	if terse.Status != ScanSuspicious {
		t.Fatalf("expected suspicious, got %v", terse.Status)
	}
	if len(terse.Matches) != 1 {
		t.Errorf("non-verbose matches = %v, want exactly the first", terse.Matches)
	}
}

func TestMetadataScannerNoExif(t *testing.T) {
	dir := t.TempDir()
	// Stdlib-encoded JPEGs carry no EXIF segment.
	path := makeJPEG(t, dir, "plain.jpg", 10, 10)

	scanner := NewMetadataScanner()
	report, err := scanner.Scan(path, false)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if report.Status != ScanNotApplicable {
		t.Errorf("Scan() = %v, want ScanNotApplicable", report.Status)
	}
}

func TestMetadataScannerNoExtractor(t *testing.T) {
	dir := t.TempDir()
	path := makeJPEG(t, dir, "plain.jpg", 10, 10)

	scanner := NewMetadataScannerWithExtractor(nil)
	report, err := scanner.Scan(path, false)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if report.Status != ScanNotApplicable {
		t.Errorf("Scan() = %v, want ScanNotApplicable", report.Status)
	}
}

func TestMetadataScannerExtractorFailure(t *testing.T) {
	dir := t.TempDir()
	path := makeJPEG(t, dir, "plain.jpg", 10, 10)

	scanner := NewMetadataScannerWithExtractor(func(io.Reader) (string, error) {
		return "", errors.New("no metadata support")
	})
	report, err := scanner.Scan(path, false)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if report.Status != ScanNotApplicable {
		t.Errorf("Scan() = %v, want ScanNotApplicable", report.Status)
	}
}

func TestMetadataScannerInjectedDump(t *testing.T) {
	dir := t.TempDir()
	path := makeJPEG(t, dir, "plain.jpg", 10, 10)

	scanner := NewMetadataScannerWithExtractor(func(io.Reader) (string, error) {
		return "Software: eval(base64_decode($x))", nil
	})
	report, err := scanner.Scan(path, false)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if report.Status != ScanSuspicious {
		t.Errorf("Scan() = %v, want ScanSuspicious", report.Status)
	}
}

func TestMetadataScannerUnreadable(t *testing.T) {
	scanner := NewMetadataScanner()
	if _, err := scanner.Scan(t.TempDir()+"/missing.jpg", false); !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got: %v", err)
	}
}

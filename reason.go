package imagegate

import (
	"fmt"
	"sync"
)

// Reason classifies why validation rejected a file.
type Reason string

const (
	ReasonBadExtension          Reason = "bad_extension"
	ReasonExtensionTypeMismatch Reason = "extension_type_mismatch"
	ReasonExtensionMimeMismatch Reason = "extension_mime_mismatch"
	ReasonNoMimeDetected        Reason = "no_mime_detected"
	ReasonBadMime               Reason = "bad_mime"
	ReasonBadExif               Reason = "bad_exif"
	ReasonDimensionTooSmall     Reason = "dimension_too_small"
	ReasonDimensionTooLarge     Reason = "dimension_too_large"
	ReasonUnreadableImage       Reason = "unreadable_image"
	ReasonCustomHookRejected    Reason = "custom_hook_rejected"
)

// reasonCatalog maps each reason to its base human-readable message.
// The outcome detail carries the per-file parameters.
var reasonCatalog = map[Reason]string{
	ReasonBadExtension:          "file extension is not a supported image extension",
	ReasonExtensionTypeMismatch: "file extension does not match the binary image type",
	ReasonExtensionMimeMismatch: "file extension does not match the detected MIME type",
	ReasonNoMimeDetected:        "file could not be read for MIME detection",
	ReasonBadMime:               "detected MIME type is not a supported image type",
	ReasonBadExif:               "embedded metadata contains suspicious content",
	ReasonDimensionTooSmall:     "image dimensions are below the configured minimum",
	ReasonDimensionTooLarge:     "image dimensions exceed the configured maximum",
	ReasonUnreadableImage:       "file is not a readable image",
	ReasonCustomHookRejected:    "file was rejected by a custom check",
}

// Message returns the base catalog message for the reason.
func (r Reason) Message() string {
	if msg, ok := reasonCatalog[r]; ok {
		return msg
	}
	return string(r)
}

// Outcome is the result of a single validation call. It is produced
// fresh per call and never mutated after construction.
type Outcome struct {
	// Valid indicates whether the file passed all checks.
	Valid bool

	// Reason classifies the failure. Empty when Valid.
	Reason Reason

	// Detail carries the per-file parameters of the failure (the
	// conflicting labels, the actual vs. limit dimensions). Optional.
	Detail string
}

// ValidOutcome returns a passing outcome.
func ValidOutcome() Outcome {
	return Outcome{Valid: true}
}

// Invalid returns a failing outcome with the given reason and detail.
func Invalid(reason Reason, detail string) Outcome {
	return Outcome{Reason: reason, Detail: detail}
}

// Invalidf returns a failing outcome with a formatted detail.
func Invalidf(reason Reason, format string, args ...interface{}) Outcome {
	return Outcome{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Message renders the outcome as a human-readable string.
func (o Outcome) Message() string {
	if o.Valid {
		return "valid"
	}
	if o.Detail == "" {
		return o.Reason.Message()
	}
	return o.Reason.Message() + ": " + o.Detail
}

// Reporter is the error/message sink collaborator. Each failed
// validation reports exactly one reason.
type Reporter interface {
	Report(reason Reason, detail string)
}

// MemoryReporter accumulates reported messages in memory. It is safe
// for concurrent use.
type MemoryReporter struct {
	mu       sync.Mutex
	messages []string
}

// Report records a failure message.
func (r *MemoryReporter) Report(reason Reason, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Invalid(reason, detail).Message())
}

// Last returns the most recent message, or empty string if none.
func (r *MemoryReporter) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

// Messages returns a copy of all accumulated messages.
func (r *MemoryReporter) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Clear discards all accumulated messages.
func (r *MemoryReporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

// Ensure MemoryReporter implements Reporter
var _ Reporter = (*MemoryReporter)(nil)

// Package imagegate validates that uploaded files genuinely are bitmap
// images of their declared type (GIF, PNG or JPEG) before they are
// accepted into a system.
//
// Three independent signals are cross-checked for consistency: the
// file extension, the binary image-type signature, and a content-based
// MIME sniff. Each can be forged independently by an attacker, so
// disagreement between any two signals is a rejection. On top of the
// cross-check, the validator enforces dimension bounds, screens JPEG
// metadata for code-injection patterns, and confirms the file fully
// decodes through its codec.
//
// # Quick Start
//
//	v := imagegate.New()
//	outcome := v.Validate("/uploads/photo.jpg")
//	if !outcome.Valid {
//	    log.Println(outcome.Message())
//	}
//
// Using the builder API:
//
//	v := imagegate.NewBuilder().
//	    MinSize(64, 64).
//	    MaxSize(4096, 4096).
//	    Reporter(&imagegate.MemoryReporter{}).
//	    Build()
//
// # The pipeline
//
// Validate runs a linear pipeline that short-circuits on the first
// failure:
//
//	1. Extension     must be gif, jpg, jpeg or png
//	2. Settings      merged from defaults + host source + call override
//	3. Signature     magic bytes must agree with the extension
//	4. MIME          sniffed type must agree with the extension
//	5. Dimensions    min/max bounds, when configured
//	6. Metadata      JPEG only: scan for injection patterns
//	7. Decode        full decode through the declared codec
//	8. Post-check    external extension point
//
// Exactly one Outcome is produced per call: pass, or the first failure
// with its Reason and detail.
//
// # Degrading gracefully
//
// Environment-dependent capabilities are modeled as optional ports
// resolved at construction. A missing signature detector falls back to
// the dimension probe's header parse; a missing metadata extractor or
// decoder makes that check inconclusive rather than failing. The
// validator degrades to the independent signals that remain and never
// silently disables a cross-check.
//
// # Limitations
//
// The metadata scan works on the serialized text dump of the embedded
// metadata, not structured field values. It is a heuristic
// defense-in-depth measure against embedded executable-looking strings,
// not a malware scanner. For malware detection, integrate with ClamAV
// or similar.
package imagegate

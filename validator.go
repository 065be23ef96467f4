package imagegate

import (
	"strings"
)

// PostCheck is the post-validation extension point, invoked with the
// file path after all core checks pass.
type PostCheck interface {
	IsValidExtra(path string) bool
}

// PostCheckFunc adapts a function to the PostCheck interface.
type PostCheckFunc func(path string) bool

// IsValidExtra implements PostCheck.
func (f PostCheckFunc) IsValidExtra(path string) bool {
	return f(path)
}

// defaultPostCheck accepts any non-empty path.
var defaultPostCheck = PostCheckFunc(func(path string) bool {
	return path != ""
})

// Validator validates that a file genuinely is a bitmap image of its
// declared type. It cross-checks the file extension, the binary
// image-type signature and the sniffed MIME type, enforces dimension
// bounds, screens JPEG metadata for code-injection patterns, and
// confirms the file decodes through its codec.
//
// A Validator is safe for concurrent use; settings overrides are
// call-scoped and the dimension cache is mutex-guarded.
type Validator struct {
	settings    Settings
	source      SettingsSource
	probe       *DimensionProbe
	signature   *SignatureSniffer
	mime        *MimeSniffer
	metadata    *MetadataScanner
	decode      *DecodeProbe
	hook        PostCheck
	reporter    Reporter
	verboseScan bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithSettings sets the default dimension bounds.
func WithSettings(s Settings) Option {
	return func(v *Validator) { v.settings = s }
}

// WithSettingsSource sets the host settings source queried on every
// call.
func WithSettingsSource(src SettingsSource) Option {
	return func(v *Validator) { v.source = src }
}

// WithPostCheck replaces the post-validation extension point.
func WithPostCheck(hook PostCheck) Option {
	return func(v *Validator) { v.hook = hook }
}

// WithReporter sets the message sink failures are reported to.
func WithReporter(r Reporter) Option {
	return func(v *Validator) { v.reporter = r }
}

// WithMimeDetector replaces the MIME content detector. Pass nil to
// force the manual signature fallback.
func WithMimeDetector(detect MimeDetector) Option {
	return func(v *Validator) { v.mime = NewMimeSnifferWithDetector(detect) }
}

// WithSignatureDetector replaces the image-type detector. Pass nil to
// derive the type from the dimension probe's header parse.
func WithSignatureDetector(detect SignatureDetector) Option {
	return func(v *Validator) {
		v.signature = NewSignatureSnifferWithDetector(detect, v.probe)
	}
}

// WithMetadataExtractor replaces the metadata extractor. Pass nil to
// make every metadata scan report not-applicable.
func WithMetadataExtractor(extract MetadataExtractor) Option {
	return func(v *Validator) {
		v.metadata = NewMetadataScannerWithExtractor(extract)
	}
}

// WithoutDimensionCache disables the per-path dimension cache.
func WithoutDimensionCache() Option {
	return func(v *Validator) { v.probe.DisableCache() }
}

// WithVerboseScan makes the metadata scan collect every matched pattern
// instead of stopping at the first.
func WithVerboseScan() Option {
	return func(v *Validator) { v.verboseScan = true }
}

// New creates a validator with default settings and the built-in
// sniffers, probes and post-check.
func New(opts ...Option) *Validator {
	probe := NewDimensionProbe()
	v := &Validator{
		settings:  DefaultSettings(),
		probe:     probe,
		signature: NewSignatureSniffer(probe),
		mime:      NewMimeSniffer(),
		metadata:  NewMetadataScanner(),
		decode:    NewDecodeProbe(),
		hook:      defaultPostCheck,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Dimensions returns the validator's dimension probe, e.g. to wire a
// CacheWatcher or invalidate entries.
func (v *Validator) Dimensions() *DimensionProbe {
	return v.probe
}

// Decoders returns the validator's decode probe for decoder
// registration.
func (v *Validator) Decoders() *DecodeProbe {
	return v.decode
}

// Validate runs the full check pipeline against the file at path using
// the validator's settings merged with its settings source.
func (v *Validator) Validate(path string) Outcome {
	return v.ValidateWithSettings(path, nil)
}

// ValidateWithSettings runs the pipeline with an additional per-call
// settings override source, applied on top of the validator's own
// source.
func (v *Validator) ValidateWithSettings(path string, override SettingsSource) Outcome {
	outcome := v.run(path, override)
	if !outcome.Valid && v.reporter != nil {
		v.reporter.Report(outcome.Reason, outcome.Detail)
	}
	return outcome
}

// run is the linear pipeline. Each stage short-circuits on failure;
// exactly one outcome is produced per call.
func (v *Validator) run(path string, override SettingsSource) Outcome {
	// 1. Resolve the extension and the format it declares.
	ext := ExtensionOf(path)
	declared := FormatForExtension(ext)
	if declared == FormatUnknown {
		return Invalidf(ReasonBadExtension, "extension %q is not one of gif, jpg, jpeg, png", ext)
	}

	// 2. Snapshot the settings for this call.
	settings := v.settings.merged(v.source).merged(override)

	// 3. Binary signature must agree with the declared format.
	if actual := v.signature.Sniff(path); actual != declared {
		return Invalidf(ReasonExtensionTypeMismatch, "extension declares %s, signature is %s", declared, actual)
	}

	// 4. Sniffed MIME type must be recognized and agree with the
	// extension's canonical MIME.
	label, err := v.mime.Sniff(path)
	if err != nil {
		return Invalidf(ReasonNoMimeDetected, "%v", err)
	}
	if !recognizedMime(label) {
		return Invalidf(ReasonBadMime, "detected %q", label)
	}
	if label != declared.MIME() {
		return Invalidf(ReasonExtensionMimeMismatch, "extension declares %s, content is %s", declared.MIME(), label)
	}

	// 5. Dimension bounds, when configured. The minimum check takes
	// precedence over the maximum when both would apply.
	if settings.bounded() {
		info, err := v.probe.Probe(path)
		if err != nil {
			return Invalidf(ReasonUnreadableImage, "size probe: %v", err)
		}
		if (settings.MinWidth > 0 && info.Width < settings.MinWidth) ||
			(settings.MinHeight > 0 && info.Height < settings.MinHeight) {
			return Invalidf(ReasonDimensionTooSmall, "image is %s, minimum is %dx%d",
				info.SizeLabel, settings.MinWidth, settings.MinHeight)
		} else if (settings.MaxWidth > 0 && info.Width > settings.MaxWidth) ||
			(settings.MaxHeight > 0 && info.Height > settings.MaxHeight) {
			return Invalidf(ReasonDimensionTooLarge, "image is %s, maximum is %dx%d",
				info.SizeLabel, settings.MaxWidth, settings.MaxHeight)
		}
	}

	// 6. JPEG metadata scan. Not-applicable is not a failure.
	if declared == FormatJPEG {
		report, err := v.metadata.Scan(path, v.verboseScan)
		if err != nil {
			return Invalidf(ReasonUnreadableImage, "metadata reader: %v", err)
		}
		if report.Status == ScanSuspicious {
			return Invalidf(ReasonBadExif, "matched %s", strings.Join(report.Matches, ", "))
		}
	}

	// 7. Full decode through the codec implied by the extension.
	// Unsupported carries no signal; prior checks stand.
	if v.decode.Probe(path, ext) == DecodeFailed {
		return Invalidf(ReasonUnreadableImage, "decoder for %q rejected the file", ext)
	}

	// 8. External post-check extension point, last.
	if v.hook != nil && !v.hook.IsValidExtra(path) {
		return Invalid(ReasonCustomHookRejected, "")
	}

	return ValidOutcome()
}

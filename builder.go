package imagegate

// Builder provides a fluent API for constructing validators
type Builder struct {
	settings Settings
	opts     []Option
}

// NewBuilder creates a new validator builder with default settings
func NewBuilder() *Builder {
	return &Builder{settings: DefaultSettings()}
}

// --- Dimension bounds ---

// MinSize sets the minimum required width and height
func (b *Builder) MinSize(width, height int) *Builder {
	b.settings.MinWidth = width
	b.settings.MinHeight = height
	return b
}

// MaxSize sets the maximum allowed width and height
func (b *Builder) MaxSize(width, height int) *Builder {
	b.settings.MaxWidth = width
	b.settings.MaxHeight = height
	return b
}

// Unbounded disables all dimension bounds
func (b *Builder) Unbounded() *Builder {
	b.settings = Settings{}
	return b
}

// --- Collaborators ---

// Source sets the host settings source queried on every call
func (b *Builder) Source(src SettingsSource) *Builder {
	b.opts = append(b.opts, WithSettingsSource(src))
	return b
}

// Hook sets the post-validation extension point
func (b *Builder) Hook(hook PostCheck) *Builder {
	b.opts = append(b.opts, WithPostCheck(hook))
	return b
}

// Reporter sets the message sink failures are reported to
func (b *Builder) Reporter(r Reporter) *Builder {
	b.opts = append(b.opts, WithReporter(r))
	return b
}

// VerboseScan makes the metadata scan collect every matched pattern
func (b *Builder) VerboseScan() *Builder {
	b.opts = append(b.opts, WithVerboseScan())
	return b
}

// WithoutCache disables the per-path dimension cache
func (b *Builder) WithoutCache() *Builder {
	b.opts = append(b.opts, WithoutDimensionCache())
	return b
}

// --- Build ---

// Build creates the validator with the configured settings
func (b *Builder) Build() *Validator {
	opts := append([]Option{WithSettings(b.settings)}, b.opts...)
	return New(opts...)
}

// Settings returns the current settings (for inspection)
func (b *Builder) Settings() Settings {
	return b.settings
}

// --- Presets ---

// ForAvatars creates a builder pre-configured for avatar uploads
func ForAvatars() *Builder {
	return NewBuilder().
		MinSize(64, 64).
		MaxSize(1024, 1024)
}

// ForThumbnails creates a builder pre-configured for thumbnail uploads
func ForThumbnails() *Builder {
	return NewBuilder().
		MaxSize(512, 512)
}

// Strict creates a builder with verbose metadata scanning and the
// default bounds
func Strict() *Builder {
	return NewBuilder().
		VerboseScan()
}

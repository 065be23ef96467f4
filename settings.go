package imagegate

// Keys the host settings source is queried with, once per validation
// call.
const (
	SettingMinWidth  = "minWidth"
	SettingMinHeight = "minHeight"
	SettingMaxWidth  = "maxWidth"
	SettingMaxHeight = "maxHeight"
)

// Settings holds the dimension bounds for a validation call. All values
// are non-negative; 0 disables that bound.
type Settings struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// DefaultSettings returns the default bounds: minimum 2x2, no maximum.
func DefaultSettings() Settings {
	return Settings{MinWidth: 2, MinHeight: 2}
}

// SettingsSource supplies per-call overrides from the host
// configuration system. Get returns the override for a setting key and
// whether one exists.
type SettingsSource interface {
	Get(key string) (int, bool)
}

// SettingsMap is a SettingsSource backed by a map.
type SettingsMap map[string]int

// Get returns the value for key and whether it is present.
func (m SettingsMap) Get(key string) (int, bool) {
	v, ok := m[key]
	return v, ok
}

// merged returns a snapshot of s with any overrides from src applied.
// The snapshot is call-scoped; the receiver is never mutated.
func (s Settings) merged(src SettingsSource) Settings {
	if src == nil {
		return s
	}
	if v, ok := src.Get(SettingMinWidth); ok {
		s.MinWidth = v
	}
	if v, ok := src.Get(SettingMinHeight); ok {
		s.MinHeight = v
	}
	if v, ok := src.Get(SettingMaxWidth); ok {
		s.MaxWidth = v
	}
	if v, ok := src.Get(SettingMaxHeight); ok {
		s.MaxHeight = v
	}
	return s
}

// bounded reports whether any dimension bound is configured.
func (s Settings) bounded() bool {
	return s.MinWidth > 0 || s.MinHeight > 0 || s.MaxWidth > 0 || s.MaxHeight > 0
}

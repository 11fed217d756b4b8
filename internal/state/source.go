package state

// SourceKey is the preference holding the background music file.
const SourceKey = "elevated_beats_n_slices/source_mp3"

// SourcePreference reads and writes the audio source path, falling back to
// a bundled default.
type SourcePreference struct {
	store       Interface
	defaultPath string
}

// NewSourcePreference binds the source preference to store.
func NewSourcePreference(store Interface, defaultPath string) *SourcePreference {
	return &SourcePreference{store: store, defaultPath: defaultPath}
}

// Source returns the persisted path, or the default if none is stored.
func (p *SourcePreference) Source() (string, error) {
	v, ok, err := p.store.GetValue(SourceKey)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return p.defaultPath, nil
	}
	return v, nil
}

// SetSource persists path. An empty path is ignored.
func (p *SourcePreference) SetSource(path string) error {
	if path == "" {
		return nil
	}
	return p.store.SetValue(SourceKey, path)
}

// ResetSource persists the default path.
func (p *SourcePreference) ResetSource() error {
	return p.store.SetValue(SourceKey, p.defaultPath)
}

// DefaultSource returns the bundled default path.
func (p *SourcePreference) DefaultSource() string {
	return p.defaultPath
}

// IsDefault reports whether the active source is the bundled default.
func (p *SourcePreference) IsDefault() bool {
	v, err := p.Source()
	return err == nil && v == p.defaultPath
}

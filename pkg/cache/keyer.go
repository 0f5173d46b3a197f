package cache

// Keyer generates cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// ScriptKey identifies a compiled script.
	ScriptKey(graphHash string, opts ScriptKeyOpts) string
	// PreviewKey identifies a rendered graph preview.
	PreviewKey(graphHash string, opts PreviewKeyOpts) string
}

// ScriptKeyOpts holds the compile options that change the emitted text.
type ScriptKeyOpts struct {
	Standalone bool   `json:"standalone"`
	Catalog    string `json:"catalog,omitempty"` // registry fingerprint
}

// PreviewKeyOpts holds the options that change a rendered preview.
type PreviewKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer produces `script:<sha256>` and `preview:<sha256>` keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ScriptKey implements Keyer.
func (DefaultKeyer) ScriptKey(graphHash string, opts ScriptKeyOpts) string {
	return hashKey("script", graphHash, opts)
}

// PreviewKey implements Keyer.
func (DefaultKeyer) PreviewKey(graphHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", graphHash, opts)
}

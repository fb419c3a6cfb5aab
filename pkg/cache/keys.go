package cache

import "fmt"

// ArtifactKeyOpts lists everything that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Style     string  `json:"style"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Transform string  `json:"transform"`
	Expansion string  `json:"expansion,omitempty"`
	Minimap   bool    `json:"minimap"`
	Payload   bool    `json:"payload,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Config    string  `json:"config,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey identifies a parsed tree document by content.
	DocumentKey(data []byte) string
	// ArtifactKey identifies a rendered artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "doc:<sha>" and "artifact:<format>:<sha>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the unscoped keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DocumentKey(data []byte) string {
	return "doc:" + Hash(data)
}

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), docHash, opts)
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/karyoview/karyoview/pkg/karyotype"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// DatasetHash hashes the JSON encoding of ds. Equal datasets hash equally
// regardless of where they were loaded from.
func DatasetHash(ds *karyotype.Dataset) (string, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// ArtifactKeyOpts are the rendering inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Mode     string
	Format   string
	Geometry karyotype.Geometry
	Colors   []string
	Title    string
}

// Keyer builds cache keys.
type Keyer interface {
	// DatasetKey names a loaded dataset, e.g. "dataset:mongo:hg38".
	DatasetKey(source, name string) string
	// ArtifactKey names one rendered mode and format of a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the unscoped [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the unscoped keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DatasetKey(source, name string) string {
	return "dataset:" + source + ":" + name
}

func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}

package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed identifier for scene nodes.
type NodeID string

// ZeroID is the zero value of NodeID.
const ZeroID NodeID = ""

// NewNodeID derives a stable identifier from a node path such as
// "defsolid/body" or "union/_anon_3". The same path always yields the same
// ID, so re-evaluating an unchanged script reproduces the same scene.
func NewNodeID(path string) NodeID {
	sum := sha256.Sum256([]byte(path))
	return NodeID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first 12 hex characters, for logs and error messages.
func (id NodeID) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:12])
}

func (id NodeID) String() string {
	return string(id)
}

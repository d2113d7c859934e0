package builder

import (
	"fmt"
	"strconv"

	"github.com/muffato/pywaltrap/core"
)

// NodeID is the identifier type produced by ID schemes.
type NodeID = core.NodeID

// IDFn maps a zero-based index to a node identifier. It must be pure.
type IDFn func(idx int) NodeID

// IntIDFn returns core.IntID(idx).
func IntIDFn(idx int) NodeID { return core.IntID(int64(idx)) }

// TokenIDFn returns an IDFn producing tokens prefix+idx, e.g. "gene0", "gene1".
// Panics on a negative idx.
func TokenIDFn(prefix string) IDFn {
	return func(idx int) NodeID {
		if idx < 0 {
			panic(fmt.Sprintf("TokenIDFn: idx must be ≥ 0, got %d", idx))
		}
		return core.TokenID(prefix + strconv.Itoa(idx))
	}
}

// WithTokenIDs sets the ID scheme to TokenIDFn(prefix).
func WithTokenIDs(prefix string) BuilderOption {
	return WithIDScheme(TokenIDFn(prefix))
}

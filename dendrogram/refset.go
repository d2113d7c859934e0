package dendrogram

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/muffato/pywaltrap/core"
)

// refSet is the per-call set of expanded internal nodes. Synthetic refs, the
// overwhelming majority, go to a compressed bitmap.
type refSet struct {
	synth *roaring64.Bitmap
	orig  map[core.NodeID]struct{}
}

func newRefSet() *refSet {
	return &refSet{synth: roaring64.New()}
}

func (s *refSet) add(r core.NodeRef) {
	if n, ok := r.SyntheticID(); ok {
		s.synth.Add(n)
		return
	}
	if s.orig == nil {
		s.orig = make(map[core.NodeID]struct{})
	}
	id, _ := r.ID()
	s.orig[id] = struct{}{}
}

func (s *refSet) has(r core.NodeRef) bool {
	if n, ok := r.SyntheticID(); ok {
		return s.synth.Contains(n)
	}
	id, _ := r.ID()
	_, ok := s.orig[id]

	return ok
}

package libeopd

import (
	"github.com/nvcleemp/eopd/eopd"
	"github.com/plan-systems/klog"
)

// FindUncoveredTuple searches the current graph for MaxTupleSize pairwise vertex-disjoint faces
// that do not lie in a common eOPD.  Faces are chosen in increasing index order and triples
// already known to be covered are not extended.
//
// The cache is cleared and seeded with up to three maximal patches before the search starts.
func (a *Analysis) FindUncoveredTuple() (eopd.Bitset, bool) {
	a.cache = a.cache[:0]
	a.seedCache()

	tuple, found := a.extendTuple(0, 0, 0, 0)
	klog.V(LogGraphs).Infof("F=%d cached=%d uncovered=%v tuple=%v", a.emb.NumFaces(), len(a.cache), found, tuple)
	return tuple, found
}

// seedCache closes the patch around face 0, then around the lowest and highest faces not yet covered.
func (a *Analysis) seedCache() {
	emb := a.emb
	nf := emb.NumFaces()
	covered := eopd.Bitset(0)

	seed := func(f int) {
		p, _ := emb.SeedPatch(f, emb.faceStart[f])
		covered |= a.storeMaximal(p).Faces
	}

	seed(0)
	for f := 1; f < nf; f++ {
		if !covered.Contains(f) {
			seed(f)
			break
		}
	}
	for f := nf - 1; f > 1; f-- {
		if !covered.Contains(f) {
			seed(f)
			break
		}
	}
}

func (a *Analysis) extendTuple(tuple, tupleVerts eopd.Bitset, size, from int) (eopd.Bitset, bool) {
	emb := a.emb
	nf := emb.NumFaces()

	for f := from; f < nf; f++ {
		verts := emb.faceVerts[f]
		if tupleVerts&verts != 0 {
			continue
		}
		next := tuple.With(f)

		switch size + 1 {
		case eopd.MaxTupleSize:
			if a.checkTuple(next) {
				continue
			}
			return next, true

		case eopd.MaxTupleSize - 1:
			// No room left for a fourth face.
			if f+1 == nf {
				continue
			}
			if a.checkTuple(next) {
				continue
			}
		}

		if found, ok := a.extendTuple(next, tupleVerts|verts, size+1, f+1); ok {
			return found, true
		}
	}
	return 0, false
}

func (a *Analysis) checkTuple(tuple eopd.Bitset) bool {
	covered := a.ExistsCoveringPatch(tuple)
	if a.onTuple != nil {
		a.onTuple(tuple, covered)
	}
	return covered
}

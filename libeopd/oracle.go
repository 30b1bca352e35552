package libeopd

import "github.com/nvcleemp/eopd/eopd"

// ExistsCoveringPatch reports whether the faces of tuple lie together in a common eOPD.
//
// The cache of maximal patches is consulted first.  Otherwise a growth search is run from every
// face of the tuple and, when it succeeds, the maximal closure of the found patch is cached.
// Both answers agree with SearchCoveringPatch run on a fresh analysis.
func (a *Analysis) ExistsCoveringPatch(tuple eopd.Bitset) bool {
	if n := tuple.Len(); n < len(a.stats.TuplesChecked) {
		a.stats.TuplesChecked[n]++
	}
	a.witness = Patch{}

	if a.CoveredByCache(tuple) {
		a.stats.CacheHits++
		return true
	}

	a.stats.Searches++
	if a.SearchCoveringPatch(tuple) {
		a.stats.SearchHits++
		return true
	}
	return false
}

// CoveredByCache reports whether some cached patch already covers tuple.
func (a *Analysis) CoveredByCache(tuple eopd.Bitset) bool {
	for i := range a.cache {
		if a.cache[i].Covers(tuple) {
			a.witness = a.cache[i].Patch
			return true
		}
	}
	return false
}

// SearchCoveringPatch runs the growth search for tuple without consulting the cache.
// On success the maximal closure of the patch found is appended to the cache.
//
// Each face of the tuple is tried in increasing order as the extension face, with each of its
// three neighbours as the first disc face.
func (a *Analysis) SearchCoveringPatch(tuple eopd.Bitset) bool {
	emb := a.emb
	faces := tuple.AppendElements(a.elems[:0])
	a.elems = faces

	for _, f := range faces {
		remaining := tuple.Without(f)
		for _, shared := range emb.FaceEdges(f) {
			p, last := emb.SeedPatch(f, shared)
			if a.growCovering(p, remaining, last) {
				return true
			}
		}
	}
	return false
}

// growCovering extends p depth-first across the boundary edges created by the last growth step
// until p meets a face in remaining.
func (a *Analysis) growCovering(p Patch, remaining eopd.Bitset, last EdgeIdx) bool {
	if p.Faces&remaining != 0 {
		a.witness = p
		a.storeMaximal(p)
		return true
	}

	emb := a.emb
	next, mirrored := emb.GrowthCandidates(last)
	if emb.Admits(p, next) && a.growCovering(emb.Grow(p, next), remaining, next) {
		return true
	}
	if emb.Admits(p, mirrored) && a.growCovering(emb.Grow(p, mirrored), remaining, mirrored) {
		return true
	}
	return false
}

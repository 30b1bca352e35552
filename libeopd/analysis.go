package libeopd

import (
	"github.com/nvcleemp/eopd/eopd"
	"github.com/plan-systems/klog"
)

// Verbosity levels of the library's log output.
const (
	LogGraphs  klog.Level = 2 // one line per analysed graph and per uncovered graph
	LogPatches klog.Level = 3 // one line per cached patch
)

// Analysis holds the per-graph state of the eOPD classifier: the embedding being examined, the cache
// of maximal patches found so far, and the work counters.
//
// An Analysis is reused across graphs via Reset and is not safe for concurrent use.
type Analysis struct {
	emb   *Embedding
	cache []PatchEntry
	stats eopd.Stats

	witness Patch // the patch behind the last true oracle answer

	stack []EdgeIdx // closure worklist
	elems []int     // scratch for tuple iteration

	// onTuple, when set, sees every tuple the enumerator hands to the oracle and its answer.
	onTuple func(tuple eopd.Bitset, covered bool)
}

func NewAnalysis() *Analysis {
	return &Analysis{
		stack: make([]EdgeIdx, 0, eopd.MaxEdgeCount),
		elems: make([]int, 0, eopd.MaxFaceCount),
	}
}

// Reset prepares the analysis for a new graph, clearing the patch cache and the stats.
func (a *Analysis) Reset(emb *Embedding) {
	a.emb = emb
	a.cache = a.cache[:0]
	a.stats = eopd.Stats{}
	a.witness = Patch{}
}

func (a *Analysis) Embedding() *Embedding {
	return a.emb
}

// Cache returns the maximal patches collected for the current graph, in insertion order.
func (a *Analysis) Cache() []PatchEntry {
	return a.cache
}

func (a *Analysis) Stats() *eopd.Stats {
	return &a.stats
}

// Witness returns the patch that proved the last true answer of ExistsCoveringPatch: the disc found
// by the search (its first face being the extension face), or the cached patch that covered the
// tuple.  After a false answer the patch is empty.
func (a *Analysis) Witness() Patch {
	return a.witness
}

// CloseMaximal grows seed greedily until no face can be added and computes its extension faces.
//
// Admissibility only becomes harder as the patch grows, so once an edge is rejected it stays
// rejected and the result does not depend on the order edges are popped.
func (a *Analysis) CloseMaximal(seed Patch) PatchEntry {
	emb := a.emb
	p := seed

	stack := a.stack[:0]
	for e := range emb.edges {
		he := &emb.edges[e]
		if p.Vertices.ContainsAll(he.Vertices) && !p.Faces.Contains(he.RightFace) {
			stack = append(stack, EdgeIdx(e))
		}
	}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !emb.Admits(p, e) {
			continue
		}
		p = emb.Grow(p, e)
		next, mirrored := emb.GrowthCandidates(e)
		stack = append(stack, next, mirrored)
	}
	a.stack = stack

	return PatchEntry{
		Patch:      p,
		Extensions: emb.ExtensionsOf(p),
	}
}

// storeMaximal closes seed and appends the result to the cache.
func (a *Analysis) storeMaximal(seed Patch) *PatchEntry {
	a.cache = append(a.cache, a.CloseMaximal(seed))
	a.stats.CachedPatches++

	entry := &a.cache[len(a.cache)-1]
	klog.V(LogPatches).Infof("cached patch %d: faces=%v ext=%v", len(a.cache), entry.Faces, entry.Extensions)
	return entry
}

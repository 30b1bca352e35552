package libeopd

import "github.com/nvcleemp/eopd/eopd"

// Patch is a set of faces grown from a seed, together with the vertices those faces bring in.
//
// The vertices of a seed patch are those of its second face only: the first face is the
// extension face whose apex stays outside the disc.
type Patch struct {
	Faces    eopd.Bitset
	Vertices eopd.Bitset
}

// PatchEntry is a maximal patch together with its extension faces.
//
// The extension frontier is kept for reporting only.  A tuple with one face inside the patch and
// another in the frontier is not necessarily covered, since the frontier face may not be reachable
// by the growth rule from the tuple's remaining faces.
type PatchEntry struct {
	Patch
	Extensions eopd.Bitset // faces outside the patch sharing at least two vertices with it
}

// Covers reports whether the entry proves that tuple lies in a common eOPD, which holds when at
// least two faces of tuple are inside the patch.
func (pe *PatchEntry) Covers(tuple eopd.Bitset) bool {
	return (tuple & pe.Faces).HasMoreThanOne()
}

// SeedPatch returns the patch made of face f and its neighbour across the shared edge,
// along with the edge through which that neighbour was entered.
func (emb *Embedding) SeedPatch(f int, shared EdgeIdx) (Patch, EdgeIdx) {
	inv := emb.edges[shared].Inverse
	nb := emb.edges[inv].RightFace
	return Patch{
		Faces:    eopd.Singleton(f).With(nb),
		Vertices: emb.faceVerts[nb],
	}, inv
}

// Admits reports whether the face to the right of e may be added to p.
//
// Both endpoints of e must be in the patch, the face must be new, and its apex must touch the
// patch in exactly the endpoints of e.
func (emb *Embedding) Admits(p Patch, e EdgeIdx) bool {
	he := &emb.edges[e]
	if !p.Vertices.ContainsAll(he.Vertices) || p.Faces.Contains(he.RightFace) {
		return false
	}
	apex := emb.edges[he.Next].End
	return p.Vertices&emb.nbrs[apex] == he.Vertices
}

// Grow adds the face to the right of e to p.
func (emb *Embedding) Grow(p Patch, e EdgeIdx) Patch {
	f := emb.edges[e].RightFace
	return Patch{
		Faces:    p.Faces.With(f),
		Vertices: p.Vertices | emb.faceVerts[f],
	}
}

// GrowthCandidates returns the two new boundary edges created by growing across e.
func (emb *Embedding) GrowthCandidates(e EdgeIdx) (EdgeIdx, EdgeIdx) {
	he := &emb.edges[e]
	return he.Next, emb.edges[emb.edges[he.Inverse].Prev].Inverse
}

// ExtensionsOf returns the faces outside p that share at least two vertices with it.
func (emb *Embedding) ExtensionsOf(p Patch) eopd.Bitset {
	ext := eopd.Bitset(0)
	for f, verts := range emb.faceVerts {
		if !p.Faces.Contains(f) && (verts & p.Vertices).HasMoreThanOne() {
			ext = ext.With(f)
		}
	}
	return ext
}

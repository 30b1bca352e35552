package libeopd

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/nvcleemp/eopd/eopd"
	"github.com/pkg/errors"
)

// FaceIndex maps the vertex set of a triangle to the faces having exactly that vertex set.
type FaceIndex struct {
	emb  *Embedding
	tree *redblacktree.Tree // uint64 vertex set => []int faces
}

func NewFaceIndex(emb *Embedding) *FaceIndex {
	idx := &FaceIndex{
		emb:  emb,
		tree: redblacktree.NewWith(utils.UInt64Comparator),
	}
	for f, verts := range emb.faceVerts {
		key := uint64(verts)
		var faces []int
		if val, found := idx.tree.Get(key); found {
			faces = val.([]int)
		}
		idx.tree.Put(key, append(faces, f))
	}
	return idx
}

// Lookup returns the unique face whose vertices are the given one-based labels.
func (idx *FaceIndex) Lookup(tri [3]int) (int, error) {
	verts := eopd.Bitset(0)
	for _, v := range tri {
		if v < 1 || v > idx.emb.NumVerts() {
			return -1, errors.Wrapf(eopd.ErrBadVtxID, "vertex %d not in 1..%d", v, idx.emb.NumVerts())
		}
		verts = verts.With(v - 1)
	}
	if verts.Len() != 3 {
		return -1, errors.Wrapf(eopd.ErrBadTriangle, "%d,%d,%d repeats a vertex", tri[0], tri[1], tri[2])
	}

	val, found := idx.tree.Get(uint64(verts))
	if !found {
		return -1, errors.Wrapf(eopd.ErrMissingTriangle, "the triangle %d,%d,%d", tri[0], tri[1], tri[2])
	}
	faces := val.([]int)
	if len(faces) > 1 {
		return -1, errors.Wrapf(eopd.ErrDuplicateTriangle, "the triangle %d,%d,%d bounds %d faces", tri[0], tri[1], tri[2], len(faces))
	}
	return faces[0], nil
}

// TupleFromTriangles resolves each triangle to its face and returns the resulting face set.
func (idx *FaceIndex) TupleFromTriangles(tris [][3]int) (eopd.Bitset, error) {
	tuple := eopd.Bitset(0)
	for _, tri := range tris {
		f, err := idx.Lookup(tri)
		if err != nil {
			return 0, err
		}
		if tuple.Contains(f) {
			return 0, errors.Wrapf(eopd.ErrDuplicateTriangle, "the triangle %d,%d,%d is given twice", tri[0], tri[1], tri[2])
		}
		tuple = tuple.With(f)
	}
	return tuple, nil
}

// TupleTriangles returns the one-based vertex labels of each face in tuple, in increasing face order.
func TupleTriangles(emb *Embedding, tuple eopd.Bitset) [][3]int {
	faces := tuple.AppendElements(nil)
	tris := make([][3]int, len(faces))
	for i, f := range faces {
		for j, v := range emb.faceVerts[f].AppendElements(make([]int, 0, 3)) {
			tris[i][j] = v + 1
		}
	}
	return tris
}

// CheckTriangles reports whether the given one-based triangles of emb lie together in a common eOPD.
// The returned tuple holds the faces the triangles resolved to.
func CheckTriangles(emb *Embedding, tris [][3]int) (bool, eopd.Bitset, error) {
	a := NewAnalysis()
	a.Reset(emb)
	return a.CheckTriangles(tris)
}

// CheckTriangles runs the oracle on the faces bounded by the given one-based triangles of the
// current graph.  At least two triangles are required.
func (a *Analysis) CheckTriangles(tris [][3]int) (bool, eopd.Bitset, error) {
	if len(tris) < 2 {
		return false, 0, errors.Wrapf(eopd.ErrBadTriangle, "need at least 2 triangles, got %d", len(tris))
	}
	tuple, err := NewFaceIndex(a.emb).TupleFromTriangles(tris)
	if err != nil {
		return false, 0, err
	}
	return a.ExistsCoveringPatch(tuple), tuple, nil
}

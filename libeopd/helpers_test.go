package libeopd

import (
	"testing"

	"github.com/nvcleemp/eopd/eopd"
)

func tetrahedron() [][]int {
	return [][]int{
		{1, 3, 2},
		{2, 3, 0},
		{0, 3, 1},
		{0, 1, 2},
	}
}

const octahedronExpr = "1: 3,5,4,6; 2: 5,3,6,4; 3: 5,1,6,2; 4: 1,5,2,6; 5: 1,3,2,4; 6: 3,1,4,2"

// flipped17Expr is a 17 vertex triangulation obtained by random edge flips.  Its only uncovered
// tuple is 2,6,8 3,10,17 7,13,16 9,14,15, and a tuple face of it lies in the extension frontier
// of a cached patch holding another tuple face.
const flipped17Expr = "1: 10,16,3; 2: 15,8,6; 3: 14,15,17,10,1,16,13,7,9; 4: 16,15,7; 5: 10,12,15,16; " +
	"6: 2,8,10,11,15; 7: 15,9,3,13,16,4; 8: 10,6,2,15,12; 9: 14,3,7,15; " +
	"10: 11,6,8,12,5,16,1,3,17,15; 11: 6,10,15; 12: 5,10,8,15; 13: 16,7,3; 14: 9,15,3; " +
	"15: 4,16,5,12,8,2,6,11,10,17,3,14,9,7; 16: 5,15,4,7,13,3,1,10; 17: 3,15,10"

// stackedTriangulation grows the tetrahedron by repeatedly inserting a vertex of degree 3
// into a face, picking the faces round robin so the result is not concentrated in one spot.
func stackedTriangulation(t testing.TB, nv int) [][]int {
	rot := tetrahedron()
	for v := 4; v < nv; v++ {
		emb := mustEmbed(t, rot)

		he := emb.Edge(emb.FaceStart((v * 7) % emb.NumFaces()))
		a, b, c := he.Start, he.End, emb.Edge(he.Next).End

		rot[a] = insertAfter(rot[a], b, v)
		rot[b] = insertAfter(rot[b], c, v)
		rot[c] = insertAfter(rot[c], a, v)
		rot = append(rot, []int{a, b, c})
	}
	return rot
}

func insertAfter(nbrs []int, after, v int) []int {
	out := make([]int, 0, len(nbrs)+1)
	for _, nb := range nbrs {
		out = append(out, nb)
		if nb == after {
			out = append(out, v)
		}
	}
	return out
}

func mustEmbed(t testing.TB, rot [][]int) *Embedding {
	t.Helper()
	emb, err := NewEmbedding(rot)
	if err != nil {
		t.Fatal(err)
	}
	return emb
}

func mustParseEmbed(t testing.TB, expr string) *Embedding {
	t.Helper()
	rot, err := ParseRotationExpr(expr)
	if err != nil {
		t.Fatal(err)
	}
	return mustEmbed(t, rot)
}

func pairwiseDisjoint(emb *Embedding, tuple eopd.Bitset) bool {
	union := eopd.Bitset(0)
	for _, f := range tuple.AppendElements(nil) {
		union |= emb.FaceVertices(f)
	}
	return union.Len() == 3*tuple.Len()
}

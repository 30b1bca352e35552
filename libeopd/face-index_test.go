package libeopd

import (
	"errors"
	"testing"

	"github.com/nvcleemp/eopd/eopd"
)

func TestFaceIndex(t *testing.T) {
	emb := mustParseEmbed(t, octahedronExpr)
	idx := NewFaceIndex(emb)

	for f := 0; f < emb.NumFaces(); f++ {
		tri := TupleTriangles(emb, eopd.Singleton(f))[0]
		got, err := idx.Lookup(tri)
		if err != nil || got != f {
			t.Fatalf("face %d: got %d, %v", f, got, err)
		}
		// Vertex order does not matter.
		got, err = idx.Lookup([3]int{tri[2], tri[0], tri[1]})
		if err != nil || got != f {
			t.Fatalf("face %d reordered: got %d, %v", f, got, err)
		}
	}

	// 1 and 2 are antipodal so 1,2,3 is not a face.
	if _, err := idx.Lookup([3]int{1, 2, 3}); !errors.Is(err, eopd.ErrMissingTriangle) {
		t.Fatalf("expected ErrMissingTriangle, got %v", err)
	}
	if _, err := idx.Lookup([3]int{1, 3, 7}); !errors.Is(err, eopd.ErrBadVtxID) {
		t.Fatalf("expected ErrBadVtxID, got %v", err)
	}
	if _, err := idx.TupleFromTriangles([][3]int{{1, 3, 5}, {5, 3, 1}}); !errors.Is(err, eopd.ErrDuplicateTriangle) {
		t.Fatalf("expected ErrDuplicateTriangle, got %v", err)
	}
}

func TestFaceIndexAmbiguous(t *testing.T) {
	emb := mustEmbed(t, [][]int{{1, 2}, {2, 0}, {0, 1}})
	if _, err := NewFaceIndex(emb).Lookup([3]int{1, 2, 3}); !errors.Is(err, eopd.ErrDuplicateTriangle) {
		t.Fatalf("expected ErrDuplicateTriangle, got %v", err)
	}
}

func TestCheckTriangles(t *testing.T) {
	emb := mustParseEmbed(t, octahedronExpr)

	// 1,3,5 and 2,3,6 are joined through 1,3,6.
	covered, tuple, err := CheckTriangles(emb, [][3]int{{1, 3, 5}, {2, 3, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if tuple.Len() != 2 || !covered {
		t.Fatalf("tuple %v covered=%v", tuple, covered)
	}

	// Any disc reaching an antipodal face picks up a chord.
	covered, _, err = CheckTriangles(emb, [][3]int{{1, 3, 5}, {2, 4, 6}})
	if err != nil || covered {
		t.Fatalf("antipodal faces: covered=%v err=%v", covered, err)
	}

	if _, _, err = CheckTriangles(emb, [][3]int{{1, 3, 5}}); !errors.Is(err, eopd.ErrBadTriangle) {
		t.Fatalf("expected ErrBadTriangle, got %v", err)
	}
}

package libeopd

import (
	"fmt"
	"testing"

	"github.com/nvcleemp/eopd/eopd"
)

func TestTetrahedronHasNoTuple(t *testing.T) {
	a := NewAnalysis()
	a.Reset(mustEmbed(t, tetrahedron()))

	if tuple, found := a.FindUncoveredTuple(); found {
		t.Fatalf("got %v", tuple)
	}
	st := a.Stats()
	if st.TuplesChecked[3] != 0 || st.TuplesChecked[4] != 0 {
		t.Fatalf("got %+v", *st)
	}
	if n := len(a.Cache()); n < 1 || n > 3 {
		t.Fatalf("expected 1 to 3 seed patches, got %d", n)
	}
}

func TestOctahedronHasNoTriple(t *testing.T) {
	emb := mustParseEmbed(t, octahedronExpr)
	a := NewAnalysis()
	a.Reset(emb)

	// Every face shares a vertex with all faces but its antipode.
	for f := 0; f < emb.NumFaces(); f++ {
		disjoint := 0
		for g := 0; g < emb.NumFaces(); g++ {
			if emb.FaceVertices(f)&emb.FaceVertices(g) == 0 {
				disjoint++
			}
		}
		if disjoint != 1 {
			t.Fatalf("face %d is disjoint from %d faces", f, disjoint)
		}
	}

	if _, found := a.FindUncoveredTuple(); found {
		t.Fatal("octahedron reported uncovered")
	}
	if a.Stats().TuplesChecked[3] != 0 {
		t.Fatal("oracle called on a triple")
	}
}

func TestEnumeratorTuplesAreDisjoint(t *testing.T) {
	for _, nv := range []int{12, 14, 16, 18} {
		emb := mustEmbed(t, stackedTriangulation(t, nv))
		a := NewAnalysis()
		a.Reset(emb)

		calls := 0
		cached := 0
		a.onTuple = func(tuple eopd.Bitset, _ bool) {
			calls++
			if n := tuple.Len(); n != 3 && n != 4 {
				t.Fatalf("V=%d: oracle called with %d faces", nv, n)
			}
			if !pairwiseDisjoint(emb, tuple) {
				t.Fatalf("V=%d: tuple %v shares a vertex", nv, tuple)
			}
			if len(a.Cache()) < cached {
				t.Fatalf("V=%d: cache shrank", nv)
			}
			cached = len(a.Cache())
		}

		tuple, found := a.FindUncoveredTuple()
		if calls == 0 {
			t.Fatalf("V=%d: no tuples checked", nv)
		}
		st := a.Stats()
		if uint64(calls) != st.TuplesChecked[3]+st.TuplesChecked[4] {
			t.Fatalf("V=%d: %d calls, stats %+v", nv, calls, *st)
		}
		if !found {
			continue
		}

		if tuple.Len() != eopd.MaxTupleSize || !pairwiseDisjoint(emb, tuple) {
			t.Fatalf("V=%d: bad uncovered tuple %v", nv, tuple)
		}

		// A fresh search, without any cache, must agree.
		fresh := NewAnalysis()
		fresh.Reset(emb)
		if fresh.SearchCoveringPatch(tuple) {
			t.Fatalf("V=%d: %v is covered after all", nv, tuple)
		}
	}
}

func TestAnalysisReuse(t *testing.T) {
	a := NewAnalysis()
	emb := mustEmbed(t, stackedTriangulation(t, 14))

	a.Reset(emb)
	tuple1, found1 := a.FindUncoveredTuple()
	stats1 := *a.Stats()

	a.Reset(mustEmbed(t, tetrahedron()))
	a.FindUncoveredTuple()

	a.Reset(emb)
	tuple2, found2 := a.FindUncoveredTuple()
	if tuple1 != tuple2 || found1 != found2 || stats1 != *a.Stats() {
		t.Fatal("results depend on earlier graphs")
	}
}

func TestCoveredTuplesSurviveFreshSearch(t *testing.T) {
	graphs := map[string]*Embedding{
		"flipped17": mustParseEmbed(t, flipped17Expr),
	}
	for _, nv := range []int{12, 14, 16, 18} {
		graphs[fmt.Sprintf("stacked%d", nv)] = mustEmbed(t, stackedTriangulation(t, nv))
	}

	for name, emb := range graphs {
		a := NewAnalysis()
		a.Reset(emb)

		var covered []eopd.Bitset
		a.onTuple = func(tuple eopd.Bitset, ok bool) {
			if ok {
				covered = append(covered, tuple)
			}
		}
		tuple, found := a.FindUncoveredTuple()

		for _, c := range covered {
			fresh := NewAnalysis()
			fresh.Reset(emb)
			if !fresh.SearchCoveringPatch(c) {
				t.Fatalf("%s: %v reported covered but no patch covers it", name, c)
			}
		}
		if found {
			fresh := NewAnalysis()
			fresh.Reset(emb)
			if fresh.SearchCoveringPatch(tuple) {
				t.Fatalf("%s: %v reported uncovered but a patch covers it", name, tuple)
			}
		}
	}
}

func TestFrontierFaceDoesNotCover(t *testing.T) {
	emb := mustParseEmbed(t, flipped17Expr)
	expected, err := NewFaceIndex(emb).TupleFromTriangles([][3]int{{2, 6, 8}, {3, 10, 17}, {7, 13, 16}, {9, 14, 15}})
	if err != nil {
		t.Fatal(err)
	}

	a := NewAnalysis()
	a.Reset(emb)
	tuple, found := a.FindUncoveredTuple()
	if !found || tuple != expected {
		t.Fatalf("expected %v, got %v (found %v)", expected, tuple, found)
	}

	// Some cached patch holds one face of the tuple and has another in its frontier.
	straddled := false
	for _, entry := range a.Cache() {
		if tuple&entry.Faces != 0 && tuple&entry.Extensions != 0 {
			straddled = true
			if entry.Covers(tuple) {
				t.Fatalf("%v covered by a frontier face", tuple)
			}
		}
	}
	if !straddled {
		t.Fatal("no cached patch straddles the tuple")
	}
}

package eopd

const (

	// MaxVtxCount is the largest triangulation (in vertices) that can be analysed.
	MaxVtxCount = 34

	// MaxFaceCount is the number of faces of a triangulation with MaxVtxCount vertices.
	// It must not exceed the width of a Bitset.
	MaxFaceCount = 2*MaxVtxCount - 4

	// MaxEdgeCount is the number of half-edges of a triangulation with MaxVtxCount vertices.
	MaxEdgeCount = 6*MaxVtxCount - 12

	// MaxDegree is the largest vertex degree a simple graph on MaxVtxCount vertices can have.
	MaxDegree = MaxVtxCount - 1

	// MaxTupleSize is the size of the face tuples the classifier searches for.
	MaxTupleSize = 4
)

// LibVersion is reported by the command line tools and the python module.
const LibVersion = "v1.3.0"

// Stats counts the work done while classifying one or more graphs.
type Stats struct {
	TuplesChecked [MaxTupleSize + 1]uint64 // oracle calls, indexed by tuple size
	CacheHits     uint64                   // oracle calls answered by a cached patch
	Searches      uint64                   // oracle calls that fell through to a search
	SearchHits    uint64                   // searches that found a covering patch
	CachedPatches uint64                   // maximal patches stored (seeds included)
}

// Add accumulates the counts of other into st.
func (st *Stats) Add(other *Stats) {
	for i, n := range other.TuplesChecked {
		st.TuplesChecked[i] += n
	}
	st.CacheHits += other.CacheHits
	st.Searches += other.Searches
	st.SearchHits += other.SearchHits
	st.CachedPatches += other.CachedPatches
}

// Plural returns "s" unless n is 1.
func Plural(n uint64) string {
	if n == 1 {
		return ""
	}
	return "s"
}

package libeopd

import (
	"github.com/nvcleemp/eopd/eopd"
	"github.com/pkg/errors"
)

// EdgeIdx addresses a half-edge within an Embedding.
type EdgeIdx int32

const NilEdge EdgeIdx = -1

// HalfEdge is one direction of an undirected edge of a plane triangulation.
type HalfEdge struct {
	Start     int         // vertex this edge leaves
	End       int         // vertex this edge enters
	Next      EdgeIdx     // next edge clockwise around Start
	Prev      EdgeIdx     // previous edge clockwise around Start
	Inverse   EdgeIdx     // the edge from End to Start
	RightFace int         // face on the right of this edge
	Vertices  eopd.Bitset // {Start, End}
}

// Embedding is a plane triangulation stored as a half-edge arena together with its dual.
//
// Vertices and faces are zero-based indices.  The rotation of a vertex lists its neighbours in
// clockwise order; the face to the right of edge u->v is the triangle (u, v, w) where w follows v
// in the rotation of u.
type Embedding struct {
	edges     []HalfEdge
	firstEdge []EdgeIdx
	degree    []int
	nbrs      []eopd.Bitset // nbrs[v] is the set of neighbours of v
	faceStart []EdgeIdx     // an edge having the face on its right
	faceVerts []eopd.Bitset
}

// NewEmbedding builds the half-edge structure and the dual for the given rotation system.
func NewEmbedding(rotation [][]int) (*Embedding, error) {
	emb := &Embedding{}
	if err := emb.Init(rotation); err != nil {
		return nil, err
	}
	return emb, nil
}

// Init resets emb to the given rotation system, reusing its allocations.
func (emb *Embedding) Init(rotation [][]int) error {
	nv := len(rotation)
	if nv < 3 {
		return errors.Wrapf(eopd.ErrNotTriangulation, "%d vertices", nv)
	}
	if nv > eopd.MaxVtxCount {
		return errors.Wrapf(eopd.ErrVtxCapacity, "%d vertices exceeds %d", nv, eopd.MaxVtxCount)
	}

	emb.edges = emb.edges[:0]
	emb.firstEdge = resizeEdges(emb.firstEdge, nv)
	emb.degree = resizeInts(emb.degree, nv)
	emb.nbrs = resizeSets(emb.nbrs, nv)

	for i, nbrs := range rotation {
		deg := len(nbrs)
		if deg < 2 {
			return errors.Wrapf(eopd.ErrNotTriangulation, "vertex %d has degree %d", i+1, deg)
		}
		if deg > eopd.MaxDegree {
			return errors.Wrapf(eopd.ErrDegreeCapacity, "vertex %d has degree %d", i+1, deg)
		}

		first := EdgeIdx(len(emb.edges))
		emb.firstEdge[i] = first
		emb.degree[i] = deg
		emb.nbrs[i] = 0

		for j, nb := range nbrs {
			if nb < 0 || nb >= nv || nb == i {
				return errors.Wrapf(eopd.ErrBadVtxID, "vertex %d lists neighbour %d", i+1, nb+1)
			}
			if emb.nbrs[i].Contains(nb) {
				return errors.Wrapf(eopd.ErrBadEncoding, "vertex %d lists neighbour %d twice", i+1, nb+1)
			}
			emb.nbrs[i] = emb.nbrs[i].With(nb)

			e := first + EdgeIdx(j)
			he := HalfEdge{
				Start:     i,
				End:       nb,
				Next:      e + 1,
				Prev:      e - 1,
				Inverse:   NilEdge,
				RightFace: -1,
				Vertices:  eopd.Singleton(i).With(nb),
			}
			if j == 0 {
				he.Prev = first + EdgeIdx(deg-1)
			}
			if j == deg-1 {
				he.Next = first
			}
			emb.edges = append(emb.edges, he)

			// Edges towards lower vertices already exist in reverse.
			if nb < i {
				inv := emb.findEdge(nb, i)
				if inv == NilEdge {
					return errors.Wrapf(eopd.ErrMissingEdge, "edge %d->%d has no inverse", i+1, nb+1)
				}
				emb.edges[e].Inverse = inv
				emb.edges[inv].Inverse = e
			}
		}
	}

	for e := range emb.edges {
		if emb.edges[e].Inverse == NilEdge {
			he := &emb.edges[e]
			return errors.Wrapf(eopd.ErrMissingEdge, "edge %d->%d has no inverse", he.Start+1, he.End+1)
		}
	}

	if err := emb.makeDual(); err != nil {
		return err
	}
	return emb.CheckEuler()
}

func (emb *Embedding) findEdge(from, to int) EdgeIdx {
	first := emb.firstEdge[from]
	for j := 0; j < emb.degree[from]; j++ {
		e := first + EdgeIdx(j)
		if emb.edges[e].End == to {
			return e
		}
	}
	return NilEdge
}

// makeDual assigns every half-edge to the face on its right and records the vertex set of each face.
func (emb *Embedding) makeDual() error {
	emb.faceStart = emb.faceStart[:0]
	emb.faceVerts = emb.faceVerts[:0]

	for v := range emb.firstEdge {
		e := emb.firstEdge[v]
		for j := 0; j < emb.degree[v]; j, e = j+1, emb.edges[e].Next {
			if emb.edges[e].RightFace >= 0 {
				continue
			}

			f := len(emb.faceStart)
			if f >= eopd.MaxFaceCount {
				return errors.Wrapf(eopd.ErrFaceCapacity, "more than %d faces", eopd.MaxFaceCount)
			}

			verts := eopd.Bitset(0)
			size := 0
			for ef := e; ; {
				emb.edges[ef].RightFace = f
				verts = verts.With(emb.edges[ef].End)
				size++
				ef = emb.edges[emb.edges[ef].Inverse].Prev
				if ef == e {
					break
				}
			}
			if size != 3 {
				return errors.Wrapf(eopd.ErrNotTriangulation, "face %d has size %d", f+1, size)
			}

			emb.faceStart = append(emb.faceStart, e)
			emb.faceVerts = append(emb.faceVerts, verts)
		}
	}
	return nil
}

// CheckEuler verifies V - E + F = 2 where E counts undirected edges.
func (emb *Embedding) CheckEuler() error {
	nv, ne, nf := emb.NumVerts(), len(emb.edges)/2, emb.NumFaces()
	if nv-ne+nf != 2 {
		return errors.Wrapf(eopd.ErrEulerViolated, "V=%d E=%d F=%d", nv, ne, nf)
	}
	return nil
}

func (emb *Embedding) NumVerts() int {
	return len(emb.firstEdge)
}

// NumEdges returns the number of half-edges.
func (emb *Embedding) NumEdges() int {
	return len(emb.edges)
}

func (emb *Embedding) NumFaces() int {
	return len(emb.faceStart)
}

func (emb *Embedding) Edge(e EdgeIdx) HalfEdge {
	return emb.edges[e]
}

func (emb *Embedding) FirstEdge(v int) EdgeIdx {
	return emb.firstEdge[v]
}

func (emb *Embedding) Degree(v int) int {
	return emb.degree[v]
}

// Neighbours returns the set of vertices adjacent to v.
func (emb *Embedding) Neighbours(v int) eopd.Bitset {
	return emb.nbrs[v]
}

// FaceStart returns a half-edge having face f on its right.
func (emb *Embedding) FaceStart(f int) EdgeIdx {
	return emb.faceStart[f]
}

// FaceVertices returns the three vertices of face f.
func (emb *Embedding) FaceVertices(f int) eopd.Bitset {
	return emb.faceVerts[f]
}

// FaceEdges returns the three half-edges bounding face f, starting with FaceStart(f).
func (emb *Embedding) FaceEdges(f int) [3]EdgeIdx {
	var out [3]EdgeIdx
	e := emb.faceStart[f]
	for i := range out {
		out[i] = e
		e = emb.edges[emb.edges[e].Next].Inverse
	}
	return out
}

// Apex returns the vertex of the face right of e that is not an endpoint of e.
func (emb *Embedding) Apex(e EdgeIdx) int {
	return emb.edges[emb.edges[e].Next].End
}

// Rotation returns the zero-based clockwise neighbour lists, each starting at its first edge.
func (emb *Embedding) Rotation() [][]int {
	rot := make([][]int, emb.NumVerts())
	for v := range rot {
		nbrs := make([]int, 0, emb.degree[v])
		e := emb.firstEdge[v]
		for j := 0; j < emb.degree[v]; j++ {
			nbrs = append(nbrs, emb.edges[e].End)
			e = emb.edges[e].Next
		}
		rot[v] = nbrs
	}
	return rot
}

func resizeEdges(buf []EdgeIdx, n int) []EdgeIdx {
	if cap(buf) < n {
		return make([]EdgeIdx, n)
	}
	return buf[:n]
}

func resizeInts(buf []int, n int) []int {
	if cap(buf) < n {
		return make([]int, n)
	}
	return buf[:n]
}

func resizeSets(buf []eopd.Bitset, n int) []eopd.Bitset {
	if cap(buf) < n {
		return make([]eopd.Bitset, n)
	}
	return buf[:n]
}

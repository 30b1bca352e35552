package libeopd

import (
	"fmt"
	"io"

	"github.com/nvcleemp/eopd/eopd"
)

// WriteFaces lists every face of emb as "index) u v w" using one-based labels.
func WriteFaces(out io.Writer, emb *Embedding) {
	for f := 0; f < emb.NumFaces(); f++ {
		writeFace(out, emb, f)
	}
}

// WriteTuple lists the faces of tuple, one per line.
func WriteTuple(out io.Writer, emb *Embedding, tuple eopd.Bitset) {
	fmt.Fprintf(out, "Face tuple %v:\n", tuple)
	for _, f := range tuple.AppendElements(nil) {
		writeFace(out, emb, f)
	}
}

// WriteDisc lists the faces of p, one per line.
func WriteDisc(out io.Writer, emb *Embedding, p Patch) {
	fmt.Fprintf(out, "Extended outer planar disc %v:\n", p.Faces)
	for _, f := range p.Faces.AppendElements(nil) {
		writeFace(out, emb, f)
	}
}

// WritePatch describes a cached patch by its faces and extension faces.
func WritePatch(out io.Writer, entry *PatchEntry) {
	fmt.Fprintf(out, "faces %v, vertices %v, extensions %v\n", entry.Faces, entry.Vertices, entry.Extensions)
}

func writeFace(out io.Writer, emb *Embedding, f int) {
	fmt.Fprintf(out, "%3d)", f+1)
	for _, v := range emb.faceVerts[f].AppendElements(make([]int, 0, 3)) {
		fmt.Fprintf(out, " %d", v+1)
	}
	fmt.Fprintln(out)
}

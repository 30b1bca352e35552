package catalog

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nvcleemp/eopd/eopd"
	"github.com/pkg/errors"
)

// Witness records the uncovered face tuple found for a graph.
type Witness struct {
	Tuple     eopd.Bitset // face indices
	Triangles [][3]int    // one-based vertices of each face in Tuple, in face order
}

// Marshal encodes the witness as a sequence of varints:
// tuple, triangle count, then three labels per triangle.
func (w *Witness) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 16+3*len(w.Triangles)))
	if err := buf.EncodeVarint(uint64(w.Tuple)); err != nil {
		return nil, err
	}
	if err := buf.EncodeVarint(uint64(len(w.Triangles))); err != nil {
		return nil, err
	}
	for _, tri := range w.Triangles {
		for _, v := range tri {
			if v < 1 || v > eopd.MaxVtxCount {
				return nil, errors.Wrapf(eopd.ErrBadVtxID, "witness vertex %d", v)
			}
			if err := buf.EncodeVarint(uint64(v)); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

func (w *Witness) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)

	tuple, err := buf.DecodeVarint()
	if err != nil {
		return errors.Wrap(eopd.ErrUnmarshal, "witness tuple")
	}
	count, err := buf.DecodeVarint()
	if err != nil || count > eopd.MaxFaceCount {
		return errors.Wrap(eopd.ErrUnmarshal, "witness triangle count")
	}

	w.Tuple = eopd.Bitset(tuple)
	w.Triangles = make([][3]int, count)
	for i := range w.Triangles {
		for j := range w.Triangles[i] {
			v, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(eopd.ErrUnmarshal, "witness triangle")
			}
			w.Triangles[i][j] = int(v)
		}
	}
	return nil
}

// Package planarcode reads and writes the planar_code binary format for plane graphs.
//
// A stream starts with the header ">>planar_code<<" (optionally ">>planar_code le<<" or
// ">>planar_code be<<") followed by records.  A record is the vertex count followed by, for each
// vertex in turn, its one-based neighbours in clockwise order terminated by 0.  Records whose
// first byte is 0 use 16-bit entries for the count and the neighbours.
package planarcode

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/nvcleemp/eopd/eopd"
	"github.com/pkg/errors"
)

const (
	Header     = ">>planar_code<<"
	headerStem = ">>planar_code"
)

// Entry widths
const (
	Width8  = 1
	Width16 = 2
)

// Code is one planar_code record.
type Code struct {
	Neighbours [][]int // one-based clockwise neighbour lists
	Width      int     // Width8 or Width16
}

// NewCode converts a zero-based rotation system into a record of the given width.
// Width8 is promoted to Width16 when the graph is too large for single bytes.
func NewCode(rotation [][]int, width int) *Code {
	if width != Width16 && len(rotation) >= 255 {
		width = Width16
	}
	if width != Width16 {
		width = Width8
	}
	code := &Code{
		Neighbours: make([][]int, len(rotation)),
		Width:      width,
	}
	for v, nbrs := range rotation {
		labels := make([]int, len(nbrs))
		for i, nb := range nbrs {
			labels[i] = nb + 1
		}
		code.Neighbours[v] = labels
	}
	return code
}

func (code *Code) NumVerts() int {
	return len(code.Neighbours)
}

// Rotation returns the zero-based neighbour lists of this record.
func (code *Code) Rotation() [][]int {
	rot := make([][]int, len(code.Neighbours))
	for v, labels := range code.Neighbours {
		nbrs := make([]int, len(labels))
		for i, nb := range labels {
			nbrs[i] = nb - 1
		}
		rot[v] = nbrs
	}
	return rot
}

// AppendTo appends the encoded record to buf.
func (code *Code) AppendTo(buf []byte, order binary.ByteOrder) []byte {
	nv := len(code.Neighbours)
	if code.Width == Width16 {
		buf = append(buf, 0)
		buf = appendUint16(buf, order, uint16(nv))
		for _, labels := range code.Neighbours {
			for _, nb := range labels {
				buf = appendUint16(buf, order, uint16(nb))
			}
			buf = appendUint16(buf, order, 0)
		}
		return buf
	}

	buf = append(buf, byte(nv))
	for _, labels := range code.Neighbours {
		for _, nb := range labels {
			buf = append(buf, byte(nb))
		}
		buf = append(buf, 0)
	}
	return buf
}

func appendUint16(buf []byte, order binary.ByteOrder, x uint16) []byte {
	var tmp [2]byte
	order.PutUint16(tmp[:], x)
	return append(buf, tmp[0], tmp[1])
}

// Reader decodes consecutive planar_code records from a stream.
type Reader struct {
	MaxVerts int // records with more vertices fail with eopd.ErrVtxCapacity

	src     *bufio.Reader
	order   binary.ByteOrder
	started bool
}

func NewReader(src io.Reader) *Reader {
	return &Reader{
		MaxVerts: eopd.MaxVtxCount,
		src:      bufio.NewReader(src),
		order:    binary.LittleEndian,
	}
}

// Next returns the next record, or io.EOF once the stream ends cleanly between records.
func (rd *Reader) Next() (*Code, error) {
	if !rd.started {
		rd.started = true
		if err := rd.readHeader(); err != nil {
			return nil, err
		}
	}

	c, err := rd.src.ReadByte()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading planar_code")
	}

	// Concatenated streams repeat the header.
	if c == '>' {
		if peek, _ := rd.src.Peek(2); len(peek) == 2 && peek[0] == '>' && peek[1] == 'p' {
			if err := rd.readHeaderTail(); err != nil {
				return nil, err
			}
			if c, err = rd.src.ReadByte(); err == io.EOF {
				return nil, io.EOF
			} else if err != nil {
				return nil, errors.Wrap(err, "reading planar_code")
			}
		}
	}

	if c != 0 {
		return rd.readRecord(int(c), Width8)
	}

	nv, err := rd.readEntry(Width16)
	if err != nil {
		return nil, err
	}
	return rd.readRecord(nv, Width16)
}

// ByteOrder returns the order of 16-bit entries announced by the header.
func (rd *Reader) ByteOrder() binary.ByteOrder {
	return rd.order
}

func (rd *Reader) readHeader() error {
	stem := make([]byte, len(headerStem))
	if _, err := io.ReadFull(rd.src, stem); err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(eopd.ErrBadHeader, "stream too short")
	} else if err != nil {
		return errors.Wrap(err, "reading planar_code header")
	}
	if string(stem) != headerStem {
		return errors.Wrapf(eopd.ErrBadHeader, "got %q", stem)
	}
	return rd.readHeaderOptions()
}

// readHeaderTail consumes a repeated header whose first '>' was already read.
func (rd *Reader) readHeaderTail() error {
	stem := make([]byte, len(headerStem)-1)
	if _, err := io.ReadFull(rd.src, stem); err != nil || string(stem) != headerStem[1:] {
		return errors.Wrapf(eopd.ErrBadHeader, "got %q", stem)
	}
	return rd.readHeaderOptions()
}

// readHeaderOptions reads up to and including the closing "<<", picking up the byte order.
func (rd *Reader) readHeaderOptions() error {
	opts, err := rd.src.ReadString('<')
	if err != nil {
		return errors.Wrap(eopd.ErrBadHeader, "unterminated header")
	}
	switch opts {
	case " be<":
		rd.order = binary.BigEndian
	case " le<", "<":
		rd.order = binary.LittleEndian
	default:
		return errors.Wrapf(eopd.ErrBadHeader, "unknown header option %q", opts)
	}
	if c, err := rd.src.ReadByte(); err != nil || c != '<' {
		return errors.Wrap(eopd.ErrBadHeader, "unterminated header")
	}
	return nil
}

func (rd *Reader) readEntry(width int) (int, error) {
	if width == Width8 {
		c, err := rd.src.ReadByte()
		if err != nil {
			return 0, readFailure(err)
		}
		return int(c), nil
	}

	var tmp [2]byte
	if _, err := io.ReadFull(rd.src, tmp[:]); err != nil {
		return 0, readFailure(err)
	}
	return int(rd.order.Uint16(tmp[:])), nil
}

// readFailure reports a stream that ran out inside a record as eopd.ErrUnexpectedEOF.
func readFailure(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return eopd.ErrUnexpectedEOF
	}
	return errors.Wrap(err, "reading planar_code")
}

func (rd *Reader) readRecord(nv int, width int) (*Code, error) {
	if nv > rd.MaxVerts {
		return nil, errors.Wrapf(eopd.ErrVtxCapacity, "%d vertices exceeds %d", nv, rd.MaxVerts)
	}

	code := &Code{
		Neighbours: make([][]int, nv),
		Width:      width,
	}
	for v := range code.Neighbours {
		var labels []int
		for {
			nb, err := rd.readEntry(width)
			if err != nil {
				return nil, errors.Wrapf(err, "in neighbours of vertex %d", v+1)
			}
			if nb == 0 {
				break
			}
			if nb > nv {
				return nil, errors.Wrapf(eopd.ErrBadVtxID, "vertex %d lists neighbour %d", v+1, nb)
			}
			labels = append(labels, nb)
		}
		code.Neighbours[v] = labels
	}
	return code, nil
}

// Writer encodes records, emitting the header before the first one.
type Writer struct {
	dst         io.Writer
	order       binary.ByteOrder
	buf         []byte
	wroteHeader bool
}

func NewWriter(dst io.Writer) *Writer {
	return &Writer{
		dst:   dst,
		order: binary.LittleEndian,
	}
}

// SetByteOrder selects the order of 16-bit entries; it must be called before the first Write.
func (wr *Writer) SetByteOrder(order binary.ByteOrder) {
	wr.order = order
}

func (wr *Writer) Write(code *Code) error {
	buf := wr.buf[:0]
	if !wr.wroteHeader {
		wr.wroteHeader = true
		if wr.order == binary.BigEndian {
			buf = append(buf, headerStem+" be<<"...)
		} else {
			buf = append(buf, Header...)
		}
	}
	buf = code.AppendTo(buf, wr.order)
	wr.buf = buf

	_, err := wr.dst.Write(buf)
	return err
}

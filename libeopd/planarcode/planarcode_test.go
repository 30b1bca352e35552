package planarcode_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"reflect"
	"testing"
	"testing/iotest"

	"github.com/nvcleemp/eopd/eopd"
	"github.com/nvcleemp/eopd/libeopd/planarcode"
)

var tetrahedron = [][]int{
	{1, 3, 2},
	{2, 3, 0},
	{0, 3, 1},
	{0, 1, 2},
}

var tetrahedronBytes = []byte{4, 2, 4, 3, 0, 3, 4, 1, 0, 1, 4, 2, 0, 1, 2, 3, 0}

func TestWriteTetrahedron(t *testing.T) {
	var out bytes.Buffer
	wr := planarcode.NewWriter(&out)
	if err := wr.Write(planarcode.NewCode(tetrahedron, planarcode.Width8)); err != nil {
		t.Fatal(err)
	}

	want := append([]byte(planarcode.Header), tetrahedronBytes...)
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("got % x", out.Bytes())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, width := range []int{planarcode.Width8, planarcode.Width16} {
			var out bytes.Buffer
			wr := planarcode.NewWriter(&out)
			wr.SetByteOrder(order)
			for i := 0; i < 3; i++ {
				if err := wr.Write(planarcode.NewCode(tetrahedron, width)); err != nil {
					t.Fatal(err)
				}
			}

			rd := planarcode.NewReader(&out)
			for i := 0; i < 3; i++ {
				code, err := rd.Next()
				if err != nil {
					t.Fatalf("width %d record %d: %v", width, i, err)
				}
				if code.Width != width {
					t.Fatalf("expected width %d, got %d", width, code.Width)
				}
				if !reflect.DeepEqual(code.Rotation(), tetrahedron) {
					t.Fatalf("got %v", code.Rotation())
				}
			}
			if _, err := rd.Next(); err != io.EOF {
				t.Fatalf("expected EOF, got %v", err)
			}
			if rd.ByteOrder() != order {
				t.Fatal("byte order not picked up from header")
			}
		}
	}
}

func TestRepeatedHeader(t *testing.T) {
	var in []byte
	in = append(in, planarcode.Header...)
	in = append(in, tetrahedronBytes...)
	in = append(in, ">>planar_code le<<"...)
	in = append(in, tetrahedronBytes...)

	rd := planarcode.NewReader(bytes.NewReader(in))
	for i := 0; i < 2; i++ {
		if _, err := rd.Next(); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if _, err := rd.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestHeaderOnly(t *testing.T) {
	rd := planarcode.NewReader(bytes.NewReader([]byte(planarcode.Header)))
	if _, err := rd.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want error
	}{
		{"empty", nil, eopd.ErrBadHeader},
		{"wrong magic", []byte(">>writegraph2d<<"), eopd.ErrBadHeader},
		{"bad option", []byte(">>planar_code xx<<"), eopd.ErrBadHeader},
		{"truncated", append([]byte(planarcode.Header), tetrahedronBytes[:7]...), eopd.ErrUnexpectedEOF},
		{"bad label", append([]byte(planarcode.Header), 3, 2, 9, 0, 1, 3, 0, 1, 2, 0), eopd.ErrBadVtxID},
		{"too large", append([]byte(planarcode.Header), 0, 40, 0), eopd.ErrVtxCapacity},
	}

	for _, tc := range cases {
		rd := planarcode.NewReader(bytes.NewReader(tc.in))
		_, err := rd.Next()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestReadFailureIsNotEOF(t *testing.T) {
	errDisk := errors.New("disk on fire")
	stream := append([]byte(planarcode.Header), tetrahedronBytes...)

	for _, cut := range []int{len(stream), len(stream) - 3, 4} {
		rd := planarcode.NewReader(io.MultiReader(bytes.NewReader(stream[:cut]), iotest.ErrReader(errDisk)))

		var err error
		for i := 0; i < 2 && err == nil; i++ {
			_, err = rd.Next()
		}
		if err == io.EOF || !errors.Is(err, errDisk) {
			t.Fatalf("cut at %d: expected the read error, got %v", cut, err)
		}
	}
}

package libeopd

import (
	"github.com/alecthomas/participle/v2"
	"github.com/nvcleemp/eopd/eopd"
	"github.com/pkg/errors"
)

// RotationExpr is a text rotation system, e.g. "1: 2,4,3; 2: 3,4,1; 3: 1,4,2; 4: 1,2,3".
// Vertices are one-based and must be listed in order; each neighbour list is clockwise.
type RotationExpr struct {
	Vertices []*VtxRotation `parser:"@@ (\";\" @@)*"`
}

type VtxRotation struct {
	ID         int64   `parser:"@Int \":\""`
	Neighbours []int64 `parser:"@Int (\",\" @Int)*"`
}

// TriangleExpr is a one-based vertex triple, e.g. "1,2,3".
type TriangleExpr struct {
	A int64 `parser:"@Int \",\""`
	B int64 `parser:"@Int \",\""`
	C int64 `parser:"@Int"`
}

var (
	rotationParser = participle.MustBuild[RotationExpr]()
	triangleParser = participle.MustBuild[TriangleExpr]()
)

// ParseRotationExpr parses a text rotation system into zero-based neighbour lists.
func ParseRotationExpr(expr string) ([][]int, error) {
	ast, err := rotationParser.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrap(eopd.ErrBadEncoding, err.Error())
	}

	nv := len(ast.Vertices)
	if nv > eopd.MaxVtxCount {
		return nil, errors.Wrapf(eopd.ErrVtxCapacity, "%d vertices exceeds %d", nv, eopd.MaxVtxCount)
	}

	rotation := make([][]int, nv)
	for i, vtx := range ast.Vertices {
		if vtx.ID != int64(i+1) {
			return nil, errors.Wrapf(eopd.ErrBadVtxID, "expected vertex %d, got %d", i+1, vtx.ID)
		}
		nbrs := make([]int, len(vtx.Neighbours))
		for j, nb := range vtx.Neighbours {
			if nb < 1 || nb > int64(nv) {
				return nil, errors.Wrapf(eopd.ErrBadVtxID, "vertex %d lists neighbour %d", i+1, nb)
			}
			nbrs[j] = int(nb - 1)
		}
		rotation[i] = nbrs
	}
	return rotation, nil
}

// ParseTriangle parses "u,v,w" into three one-based vertex labels.
func ParseTriangle(expr string) ([3]int, error) {
	ast, err := triangleParser.ParseString("", expr)
	if err != nil {
		return [3]int{}, errors.Wrapf(eopd.ErrBadTriangle, "%q: %v", expr, err)
	}

	tri := [3]int{int(ast.A), int(ast.B), int(ast.C)}
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
		return tri, errors.Wrapf(eopd.ErrBadTriangle, "%q repeats a vertex", expr)
	}
	return tri, nil
}

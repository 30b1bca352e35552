package eopd

import "errors"

// Errors
var (
	ErrBadHeader         = errors.New("bad planar_code header")
	ErrUnexpectedEOF     = errors.New("unexpected end of planar_code stream")
	ErrBadEncoding       = errors.New("bad graph encoding")
	ErrBadVtxID          = errors.New("bad graph vertex ID")
	ErrMissingEdge       = errors.New("inverse edge missing")
	ErrNotTriangulation  = errors.New("graph is not a plane triangulation")
	ErrEulerViolated     = errors.New("embedding violates Euler's formula")
	ErrVtxCapacity       = errors.New("vertex capacity exceeded")
	ErrFaceCapacity      = errors.New("face capacity exceeded")
	ErrDegreeCapacity    = errors.New("vertex degree capacity exceeded")
	ErrBadTriangle       = errors.New("bad triangle")
	ErrMissingTriangle   = errors.New("triangle does not exist")
	ErrDuplicateTriangle = errors.New("triangle is not unique")
	ErrBadCatalogParam   = errors.New("bad catalog param")
	ErrUnmarshal         = errors.New("unmarshal failed")
)

// IsCapacityError reports whether err was caused by a graph too large for the fixed-width sets.
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrVtxCapacity) ||
		errors.Is(err, ErrFaceCapacity) ||
		errors.Is(err, ErrDegreeCapacity)
}

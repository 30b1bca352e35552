package eopd_test

import (
	"testing"

	"github.com/nvcleemp/eopd/eopd"
)

func TestBitset(t *testing.T) {
	var s eopd.Bitset
	if !s.IsEmpty() || s.HasMoreThanOne() || s.Min() != -1 || s.Max() != -1 {
		t.Fatal("empty set misbehaves")
	}

	s = s.With(3)
	if s.HasMoreThanOne() || !s.Contains(3) || s.Contains(2) {
		t.Fatal("singleton misbehaves")
	}

	s = s.With(0).With(63)
	if !s.HasMoreThanOne() || s.Len() != 3 || s.Min() != 0 || s.Max() != 63 {
		t.Fatalf("got %v", s)
	}
	if s.String() != "{0,3,63}" {
		t.Fatalf("got %q", s.String())
	}

	sub := eopd.Singleton(0) | eopd.Singleton(63)
	if !s.ContainsAll(sub) || sub.ContainsAll(s) {
		t.Fatal("ContainsAll failed")
	}
	if s.Without(3) != sub {
		t.Fatal("Without failed")
	}

	elems := s.AppendElements(nil)
	if len(elems) != 3 || elems[0] != 0 || elems[1] != 3 || elems[2] != 63 {
		t.Fatalf("got %v", elems)
	}
}

func TestCapacityError(t *testing.T) {
	if !eopd.IsCapacityError(eopd.ErrFaceCapacity) {
		t.Fatal("face capacity not recognised")
	}
	if eopd.IsCapacityError(eopd.ErrBadHeader) {
		t.Fatal("header error reported as capacity")
	}
	if eopd.MaxFaceCount > 64 {
		t.Fatal("faces do not fit in a Bitset")
	}
}

func TestStatsAdd(t *testing.T) {
	a := eopd.Stats{CacheHits: 2}
	a.TuplesChecked[3] = 5
	b := eopd.Stats{Searches: 1, CachedPatches: 4}
	b.TuplesChecked[3] = 1
	b.TuplesChecked[4] = 7

	a.Add(&b)
	if a.TuplesChecked[3] != 6 || a.TuplesChecked[4] != 7 || a.CacheHits != 2 || a.Searches != 1 || a.CachedPatches != 4 {
		t.Fatalf("got %+v", a)
	}
	if eopd.Plural(1) != "" || eopd.Plural(0) != "s" {
		t.Fatal("Plural failed")
	}
}

package eopd

import (
	"math/bits"
	"strconv"
	"strings"
)

// Bitset is a set of small indices (vertex or face indices), one bit per index.
type Bitset uint64

// Singleton returns the set containing only i.
func Singleton(i int) Bitset {
	return Bitset(1) << uint(i)
}

func (s Bitset) Contains(i int) bool {
	return s&Singleton(i) != 0
}

// ContainsAll reports whether sub is a subset of s.
func (s Bitset) ContainsAll(sub Bitset) bool {
	return s&sub == sub
}

func (s Bitset) With(i int) Bitset {
	return s | Singleton(i)
}

func (s Bitset) Without(i int) Bitset {
	return s &^ Singleton(i)
}

func (s Bitset) IsEmpty() bool {
	return s == 0
}

// HasMoreThanOne reports whether s holds at least two elements.
func (s Bitset) HasMoreThanOne() bool {
	return s&(s-1) != 0
}

// Len returns the number of elements in s.
func (s Bitset) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Min returns the smallest element of s, or -1 if s is empty.
func (s Bitset) Min() int {
	if s == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(s))
}

// Max returns the largest element of s, or -1 if s is empty.
func (s Bitset) Max() int {
	return 63 - bits.LeadingZeros64(uint64(s))
}

// AppendElements appends the elements of s to dst in increasing order.
func (s Bitset) AppendElements(dst []int) []int {
	for s != 0 {
		i := bits.TrailingZeros64(uint64(s))
		dst = append(dst, i)
		s &= s - 1
	}
	return dst
}

// String formats s as "{a,b,c}" using zero-based indices.
func (s Bitset) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, idx := range s.AppendElements(make([]int, 0, 8)) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	b.WriteByte('}')
	return b.String()
}

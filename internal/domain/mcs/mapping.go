package mcs

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Pair is one query-atom to target-atom correspondence.
type Pair struct {
	Query  int `json:"query"`
	Target int `json:"target"`
}

// AtomMapping is a partial injective function from query atoms to target
// atoms.  Put refuses any pair that would break injectivity in either
// direction, so a mapping is consistent at every point of its life.
type AtomMapping struct {
	q2t []int
	t2q []int
	n   int
}

// NewAtomMapping returns an empty mapping between graphs of nq and nt atoms.
func NewAtomMapping(nq, nt int) AtomMapping {
	m := AtomMapping{q2t: make([]int, nq), t2q: make([]int, nt)}
	for i := range m.q2t {
		m.q2t[i] = -1
	}
	for i := range m.t2q {
		m.t2q[i] = -1
	}
	return m
}

// Put maps qi onto ti.  It returns false, leaving the mapping unchanged, if
// either atom is already mapped to a different partner or is out of range.
// Re-putting an existing pair is a no-op that returns true.
func (m *AtomMapping) Put(qi, ti int) bool {
	if qi < 0 || qi >= len(m.q2t) || ti < 0 || ti >= len(m.t2q) {
		return false
	}
	cur, back := m.q2t[qi], m.t2q[ti]
	if cur == ti && back == qi {
		return true
	}
	if cur != -1 || back != -1 {
		return false
	}
	m.q2t[qi] = ti
	m.t2q[ti] = qi
	m.n++
	return true
}

// Target returns the target atom qi is mapped to.
func (m AtomMapping) Target(qi int) (int, bool) {
	if qi < 0 || qi >= len(m.q2t) || m.q2t[qi] < 0 {
		return -1, false
	}
	return m.q2t[qi], true
}

// Query returns the query atom mapped onto ti.
func (m AtomMapping) Query(ti int) (int, bool) {
	if ti < 0 || ti >= len(m.t2q) || m.t2q[ti] < 0 {
		return -1, false
	}
	return m.t2q[ti], true
}

// Len returns the number of mapped pairs.
func (m AtomMapping) Len() int { return m.n }

// QueryAtoms and TargetAtoms return the sizes of the two graphs.
func (m AtomMapping) QueryAtoms() int  { return len(m.q2t) }
func (m AtomMapping) TargetAtoms() int { return len(m.t2q) }

// Pairs returns the mapping as pairs ordered by query index.
func (m AtomMapping) Pairs() []Pair {
	out := make([]Pair, 0, m.n)
	for qi, ti := range m.q2t {
		if ti >= 0 {
			out = append(out, Pair{Query: qi, Target: ti})
		}
	}
	return out
}

// Clone returns an independent copy.
func (m AtomMapping) Clone() AtomMapping {
	return AtomMapping{
		q2t: append([]int(nil), m.q2t...),
		t2q: append([]int(nil), m.t2q...),
		n:   m.n,
	}
}

// Inverse returns the same correspondence with query and target swapped.
func (m AtomMapping) Inverse() AtomMapping {
	return AtomMapping{
		q2t: append([]int(nil), m.t2q...),
		t2q: append([]int(nil), m.q2t...),
		n:   m.n,
	}
}

// Equal reports whether m and o hold the same pairs over the same graphs.
func (m AtomMapping) Equal(o AtomMapping) bool {
	if m.n != o.n || len(m.q2t) != len(o.q2t) || len(m.t2q) != len(o.t2q) {
		return false
	}
	for i, v := range m.q2t {
		if o.q2t[i] != v {
			return false
		}
	}
	return true
}

// Hash returns an xxhash digest of the pair list.  Equal mappings hash
// equally; distinct mappings may collide.
func (m AtomMapping) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for qi, ti := range m.q2t {
		if ti < 0 {
			continue
		}
		binary.LittleEndian.PutUint32(buf[:4], uint32(qi))
		binary.LittleEndian.PutUint32(buf[4:], uint32(ti))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Injective verifies both directions of the mapping against each other.  It
// exists for tests and assertions; Put never produces a mapping for which it
// returns false.
func (m AtomMapping) Injective() bool {
	count := 0
	for qi, ti := range m.q2t {
		if ti < 0 {
			continue
		}
		if ti >= len(m.t2q) || m.t2q[ti] != qi {
			return false
		}
		count++
	}
	for ti, qi := range m.t2q {
		if qi >= 0 && (qi >= len(m.q2t) || m.q2t[qi] != ti) {
			return false
		}
	}
	return count == m.n
}

func (m AtomMapping) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range m.Pairs() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d:%d", p.Query, p.Target)
	}
	sb.WriteByte('}')
	return sb.String()
}

// mappingSet collects distinct mappings in insertion order.
type mappingSet struct {
	items []AtomMapping
	index map[uint64][]int
}

func newMappingSet() *mappingSet {
	return &mappingSet{index: make(map[uint64][]int)}
}

// add inserts m unless an equal mapping is present and reports whether it was
// inserted.
func (s *mappingSet) add(m AtomMapping) bool {
	h := m.Hash()
	for _, i := range s.index[h] {
		if s.items[i].Equal(m) {
			return false
		}
	}
	s.index[h] = append(s.index[h], len(s.items))
	s.items = append(s.items, m)
	return true
}

func (s *mappingSet) contains(m AtomMapping) bool {
	for _, i := range s.index[m.Hash()] {
		if s.items[i].Equal(m) {
			return true
		}
	}
	return false
}

func (s *mappingSet) len() int { return len(s.items) }

package token

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Set is a fixed-size bitmap over the token enumeration plus a derived
// population count.  Count() always equals the population count of the
// underlying bitmap: Set never exposes the bitmap directly, so every
// mutation goes through Insert or Union.
type Set struct {
	bits *bitset.BitSet
}

// NewSet constructs an empty token set.
func NewSet() Set {
	return Set{bitset.New(Count)}
}

// Of constructs a token set containing exactly the given tokens
// ("population-from-list of tokens").
func Of(kinds ...Kind) Set {
	s := NewSet()
	//
	for _, k := range kinds {
		s.Insert(k)
	}
	//
	return s
}

// Union constructs the union of zero or more token sets.
func Union(sets ...Set) Set {
	s := NewSet()
	//
	for _, other := range sets {
		s.bits.InPlaceUnion(other.bits)
	}
	//
	return s
}

// Insert adds k to the set.
func (s Set) Insert(k Kind) {
	s.bits.Set(uint(k))
}

// Contains is the element test.
func (s Set) Contains(k Kind) bool {
	return s.bits.Test(uint(k))
}

// Subset reports whether every element of s is also in other, i.e. s minus
// other is empty.
func (s Set) Subset(other Set) bool {
	return s.bits.DifferenceCardinality(other.bits) == 0
}

// Disjoint reports whether s and other share no elements.
func (s Set) Disjoint(other Set) bool {
	return s.bits.IntersectionCardinality(other.bits) == 0
}

// Count returns the number of elements in the set; this is always the
// population count of the underlying bitmap.
func (s Set) Count() uint {
	return s.bits.Count()
}

// Elements returns the members of the set in ascending Kind order.
func (s Set) Elements() []Kind {
	var result []Kind
	//
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		result = append(result, Kind(i))
	}
	//
	return result
}

// String renders the set as a bracketed, comma-separated list.
func (s Set) String() string {
	var parts []string
	//
	for _, k := range s.Elements() {
		parts = append(parts, k.String())
	}
	//
	return "{" + strings.Join(parts, ", ") + "}"
}

// ListString renders the set as a natural-language list with the final
// element joined by "or", e.g. "')', ';' or end-of-file" — used by the
// parser's "unexpected token" diagnostics to describe an expected set.
func (s Set) ListString() string {
	elems := s.Elements()
	//
	switch len(elems) {
	case 0:
		return ""
	case 1:
		return quoted(elems[0])
	default:
		var parts []string
		//
		for _, k := range elems[:len(elems)-1] {
			parts = append(parts, quoted(k))
		}
		//
		return strings.Join(parts, ", ") + " or " + quoted(elems[len(elems)-1])
	}
}

func quoted(k Kind) string {
	if k.IsReservedWord() || k == Ident || k == EOF {
		return k.String()
	}
	//
	return fmt.Sprintf("'%s'", k.String())
}

// StructLiteral renders the set as a brace-enclosed list of its member
// names as goName gives them, e.g. "{AND, identifier}" for {And, Ident};
// special symbols, EOF and Unknown appear as "Kind(n)".
func (s Set) StructLiteral() string {
	var parts []string
	//
	for _, k := range s.Elements() {
		parts = append(parts, goName(k))
	}
	//
	return "{" + strings.Join(parts, ", ") + "}"
}

// HexLiteral renders the set as a hex-literal form, one 64-bit word per
// group of 64 consecutive kinds, useful when embedding a precomputed table
// directly in generated Go source.
func (s Set) HexLiteral() string {
	var (
		parts []string
		words = make([]uint64, (Count+63)/64)
	)
	//
	for _, k := range s.Elements() {
		words[uint(k)/64] |= uint64(1) << (uint(k) % 64)
	}
	//
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("0x%016x", w))
	}
	//
	return "{" + strings.Join(parts, ", ") + "}"
}

// goName maps a token kind to its String() spelling ("AND", "identifier",
// ...), or to the conversion form "Kind(n)" for special symbols, EOF and
// Unknown. It does not produce the Go constant names of this package.
func goName(k Kind) string {
	if k.IsSpecialSymbol() || k == EOF || k == Unknown {
		return fmt.Sprintf("Kind(%d)", uint(k))
	}
	//
	return k.String()
}

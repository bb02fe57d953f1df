package document

import (
	"cmp"
	"strconv"
	"strings"
)

// Lookup follows path (object keys and decimal array indices) from v.
// It accepts both ordered and plain values.
func Lookup(v any, path []string) (any, bool) {
	cur := v
	for _, seg := range path {
		switch t := cur.(type) {
		case *Object:
			next, ok := t.Get(seg)
			if !ok {
				return nil, false
			}
			cur = next
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// ComparePaths orders two paths into v by where they appear when v is
// serialized: object keys by insertion order (sorted order for plain maps),
// array elements by index. A path sorts before the paths beneath it.
// Segments missing from v sort after present ones, then lexically.
func ComparePaths(v any, a, b []string) int {
	cur := v
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return compareSegments(cur, a[i], b[i])
		}
		next, ok := Lookup(cur, a[i:i+1])
		if !ok {
			cur = nil
			continue
		}
		cur = next
	}
	return cmp.Compare(len(a), len(b))
}

func compareSegments(parent any, a, b string) int {
	pa, oka := segmentIndex(parent, a)
	pb, okb := segmentIndex(parent, b)
	switch {
	case oka && okb:
		if c := cmp.Compare(pa, pb); c != 0 {
			return c
		}
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(a, b)
}

// segmentIndex returns the serialization position of seg within parent.
func segmentIndex(parent any, seg string) (int, bool) {
	switch t := parent.(type) {
	case *Object:
		return t.index(seg)
	case map[string]any:
		if _, ok := t[seg]; !ok {
			return 0, false
		}
		n := 0
		for k := range t {
			if k < seg {
				n++
			}
		}
		return n, true
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(t) {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

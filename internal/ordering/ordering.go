// Package ordering holds the list arithmetic behind contiguous, zero-based
// order values. Callers persist the returned slice by writing each element's
// index as its new order.
package ordering

// Clamp bounds i to [lo, hi].
func Clamp(i, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// ClampWithin bounds a target index for a reorder inside a list of length n.
func ClampWithin(to, n int) int {
	return Clamp(to, 0, n-1)
}

// ClampInto bounds a target index for an insertion into a list of length n.
// The bound is n because the insertion grows the list.
func ClampInto(to, n int) int {
	return Clamp(to, 0, n)
}

// IndexOf returns the position of id in ids, or -1.
func IndexOf[T comparable](ids []T, id T) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Remove returns a copy of ids without id.
func Remove[T comparable](ids []T, id T) []T {
	out := make([]T, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Insert returns a copy of ids with id placed at index at (clamped into range).
func Insert[T comparable](ids []T, id T, at int) []T {
	at = ClampInto(at, len(ids))
	out := make([]T, 0, len(ids)+1)
	out = append(out, ids[:at]...)
	out = append(out, id)
	return append(out, ids[at:]...)
}

// Reorder moves id to index to within the same list. The target is clamped to
// [0, len(ids)-1]. If id is absent the list is returned unchanged.
func Reorder[T comparable](ids []T, id T, to int) []T {
	if IndexOf(ids, id) < 0 {
		return append([]T(nil), ids...)
	}
	to = ClampWithin(to, len(ids))
	return Insert(Remove(ids, id), id, to)
}

// MoveAcross takes id out of src and inserts it into dst at index to, clamped
// to [0, len(dst)].
func MoveAcross[T comparable](src, dst []T, id T, to int) (newSrc, newDst []T) {
	newSrc = Remove(src, id)
	dst = Remove(dst, id)
	newDst = Insert(dst, id, ClampInto(to, len(dst)))
	return newSrc, newDst
}

// Contiguous reports whether orders is a permutation of 0..len(orders)-1.
func Contiguous(orders []int) bool {
	seen := make([]bool, len(orders))
	for _, o := range orders {
		if o < 0 || o >= len(orders) || seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

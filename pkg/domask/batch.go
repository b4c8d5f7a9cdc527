package domask

// Bitmask names indices a batch operation should skip, for elements whose
// ownership was transferred elsewhere. Index i corresponds to bit 1<<i; only
// the first 64 indices are addressable, so elements past index 63 can never
// be skipped. Split larger batches if selective frees are needed there.
type Bitmask uint64

// Has reports whether index i is named in the mask.
func (b Bitmask) Has(i int) bool {
	return i < 64 && b&(1<<uint(i)) != 0
}

// AllocateMany allocates count masked values of the same domain and order.
// If any allocation fails, everything allocated earlier in the batch is freed
// before the error returns, so a failed batch leaks nothing.
func AllocateMany[T Uint](domain Domain, order, count int) ([]*Masked[T], error) {
	if count < 2 {
		return nil, errorf("AllocateMany", "%w: batch needs at least 2 elements, got %d", ErrInvalidOrder, count)
	}
	out := make([]*Masked[T], count)
	for i := range out {
		m, err := Allocate[T](domain, order)
		if err != nil {
			FreeMany(out[:i], 0)
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// MaskMany masks each value in values at the same domain and order, with the
// same all-or-nothing failure policy as AllocateMany.
func MaskMany[T Uint](values []T, domain Domain, order int) ([]*Masked[T], error) {
	if len(values) < 2 {
		return nil, errorf("MaskMany", "%w: batch needs at least 2 elements, got %d", ErrInvalidOrder, len(values))
	}
	out := make([]*Masked[T], len(values))
	for i, v := range values {
		m, err := Mask(v, domain, order)
		if err != nil {
			FreeMany(out[:i], 0)
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// RefreshMany refreshes every element of vals.
func RefreshMany[T Uint](vals []*Masked[T]) {
	for _, m := range vals {
		if m != nil {
			m.Refresh()
		}
	}
}

// FreeMany frees every element of vals except the indices named in skip,
// clearing the slice entries last so no dangling handles survive. skip only
// covers indices 0 through 63; later elements are always freed.
func FreeMany[T Uint](vals []*Masked[T], skip Bitmask) {
	for i, m := range vals {
		if skip.Has(i) {
			continue
		}
		m.Free()
	}
	for i := range vals {
		vals[i] = nil
	}
}

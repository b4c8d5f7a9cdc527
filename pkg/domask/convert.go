package domask

// Domain conversion. Both directions are idempotent and mutate the value in
// place; on failure the input is left untouched and the error wraps
// ErrConversion.
//
// Boolean to arithmetic runs a recursive affine decomposition over
// psi(m, r) = (m XOR r) - r. Arithmetic to Boolean remasks each arithmetic
// share individually and adds the resulting Boolean-masked lanes with a
// carry-save-adder tree and a masked Kogge-Stone carry propagator.

// ToArithmetic converts m into the Arithmetic domain. A value already in the
// Arithmetic domain is returned unchanged.
func ToArithmetic[T Uint](m *Masked[T]) error {
	if err := checkOne("ToArithmetic", m); err != nil {
		return err
	}
	if m.domain == Arithmetic {
		return nil
	}

	if m.order == 1 {
		// Order-1 fast path: Goubin's conversion never holds the secret in
		// a single word, unlike the recursive base case.
		a0, a1 := goubinB2A(m.shares[0], m.shares[1])
		m.shares[0] = a0
		m.shares[1] = a1
		m.domain = Arithmetic
		barrier(m.shares)
		m.Refresh()
		return nil
	}

	scratch := make([]T, len(m.shares))
	copy(scratch, m.shares)
	add := btoaRec(scratch)

	// The decomposition emits order additive shares; the dropped extra share
	// is zero by construction, so re-expanding to order+1 keeps the sum.
	m.shares[0] = add[0]
	for i := 1; i < len(add); i++ {
		m.shares[i] = -add[i]
	}
	m.shares[m.order] = 0
	m.domain = Arithmetic

	zeroizeWords(scratch)
	zeroizeWords(add)
	barrier(m.shares)
	m.Refresh()
	return nil
}

// ToBoolean converts m into the Boolean domain. A value already in the
// Boolean domain is returned unchanged.
func ToBoolean[T Uint](m *Masked[T]) error {
	if err := checkOne("ToBoolean", m); err != nil {
		return err
	}
	if m.domain == Boolean {
		return nil
	}

	res, err := atob(m)
	if err != nil {
		return errorf("ToBoolean", "%w: %v", ErrConversion, err)
	}
	copy(m.shares, res.shares)
	m.domain = Boolean
	res.Free()
	barrier(m.shares)
	return nil
}

// goubinB2A converts the 2-share Boolean sharing (x0, x1) into a subtractive
// arithmetic sharing, consuming one random word. Every intermediate is
// blinded by g, so no step materializes the secret.
func goubinB2A[T Uint](x0, x1 T) (T, T) {
	g := randWords[T](1)
	t := x0 ^ g[0]
	t -= g[0]
	t ^= x0
	gx := g[0] ^ x1
	a := x0 ^ gx
	a -= gx
	a ^= t
	zeroizeWords(g)
	// secret = a + x1, i.e. a - (-x1) in subtractive form.
	return a, -x1
}

// btoaRec converts n Boolean shares into n-1 additive shares summing to the
// same secret. It consumes exactly n-1 random words per recursion level; the
// refresh words are folded into both shares[0] and the blinded share, so the
// blinding cancels out of the XOR.
func btoaRec[T Uint](x []T) []T {
	n := len(x)
	if n == 2 {
		return []T{x[0] ^ x[1]}
	}

	r := randWords[T](n - 1)
	for i, v := range r {
		x[0] ^= v
		x[i+1] ^= v
	}
	zeroizeWords(r)
	barrier(x)

	// y is a Boolean sharing of psi applied to the tail XOR: psi(x0, .) is
	// XOR-affine, with x0 itself as the correction term once per pair of
	// tail shares (present exactly when n is odd).
	y := make([]T, n-1)
	for i := 1; i < n; i++ {
		y[i-1] = (x[0] ^ x[i]) - x[i]
	}
	if n%2 == 1 {
		y[0] ^= x[0]
	}

	a := btoaRec(x[1:])
	b := btoaRec(y)

	out := make([]T, n-1)
	for i := 0; i < n-3; i++ {
		out[i] = a[i] + b[i]
	}
	out[n-3] = a[n-3]
	out[n-2] = b[n-3]

	zeroizeWords(y)
	zeroizeWords(a)
	zeroizeWords(b)
	return out
}

// atob produces a fresh Boolean-masked value equal to the subtractive
// arithmetic value m. Each arithmetic share becomes the plaintext input of an
// independent Boolean masking, so the shares are only ever combined through
// the secure adder gadgets.
func atob[T Uint](m *Masked[T]) (*Masked[T], error) {
	order := m.order

	if order == 1 {
		// Two lanes: a single borrow-style chain s0 - s1.
		a, err := Mask(m.shares[0], Boolean, order)
		if err != nil {
			return nil, err
		}
		b, err := Mask(m.shares[1], Boolean, order)
		if err != nil {
			a.Free()
			return nil, err
		}
		res, err := ksSub(a, b)
		a.Free()
		b.Free()
		return res, err
	}

	lanes := additiveView(m.shares)
	vals := make([]*Masked[T], len(lanes))
	for i, v := range lanes {
		mv, err := Mask(v, Boolean, order)
		if err != nil {
			zeroizeWords(lanes)
			freeAll(vals)
			return nil, err
		}
		vals[i] = mv
	}
	zeroizeWords(lanes)

	// Collapse the lanes to a sum/carry pair with 3:2 carry-save adders.
	for len(vals) > 2 {
		next := make([]*Masked[T], 0, len(vals))
		i := 0
		for ; i+2 < len(vals); i += 3 {
			s, c, err := csa(vals[i], vals[i+1], vals[i+2])
			if err != nil {
				freeAll(vals)
				freeAll(next)
				return nil, err
			}
			vals[i].Free()
			vals[i+1].Free()
			vals[i+2].Free()
			next = append(next, s, c)
		}
		next = append(next, vals[i:]...)
		vals = next
	}

	res, err := ksAdd(vals[0], vals[1])
	freeAll(vals)
	return res, err
}

// csa is a 3-input 2-output carry-save adder over Boolean-masked values:
// x + y + z = s + c with s the bitwise sum and c the carries shifted up.
func csa[T Uint](x, y, z *Masked[T]) (s, c *Masked[T], err error) {
	a, err := Xor(x, y)
	if err != nil {
		return nil, nil, err
	}
	defer a.Free()

	s, err = Xor(a, z)
	if err != nil {
		return nil, nil, err
	}

	w, err := Xor(x, z)
	if err != nil {
		s.Free()
		return nil, nil, err
	}
	defer w.Free()

	// majority(x,y,z) = x ^ ((x^y) & (x^z))
	v, err := And(a, w)
	if err != nil {
		s.Free()
		return nil, nil, err
	}
	defer v.Free()

	xv, err := Xor(x, v)
	if err != nil {
		s.Free()
		return nil, nil, err
	}
	defer xv.Free()

	c, err = Shl(xv, 1)
	if err != nil {
		s.Free()
		return nil, nil, err
	}
	return s, c, nil
}

// ksAdd adds two Boolean-masked values with the Kogge-Stone parallel-prefix
// carry propagator: log2(bitlen) doubling rounds over the propagate/generate
// pair, then one final alignment shift.
func ksAdd[T Uint](x, y *Masked[T]) (*Masked[T], error) {
	var scratch []*Masked[T]
	defer func() { freeAll(scratch) }()
	track := func(m *Masked[T]) *Masked[T] {
		scratch = append(scratch, m)
		return m
	}

	p, err := Xor(x, y)
	if err != nil {
		return nil, err
	}
	track(p)
	g, err := And(x, y)
	if err != nil {
		return nil, err
	}
	track(g)

	width := widthOf[T]()
	for d := 1; d < width; d <<= 1 {
		gs, err := Shl(g, uint(d))
		if err != nil {
			return nil, err
		}
		track(gs)
		t, err := And(p, gs)
		if err != nil {
			return nil, err
		}
		track(t)
		g2, err := Xor(g, t)
		if err != nil {
			return nil, err
		}
		track(g2)

		ps, err := Shl(p, uint(d))
		if err != nil {
			return nil, err
		}
		track(ps)
		p2, err := And(p, ps)
		if err != nil {
			return nil, err
		}
		track(p2)

		g, p = g2, p2
	}

	carry, err := Shl(g, 1)
	if err != nil {
		return nil, err
	}
	track(carry)
	base, err := Xor(x, y)
	if err != nil {
		return nil, err
	}
	track(base)
	return Xor(base, carry)
}

// ksSub computes x - y through the complement identity x - y = ^(^x + y),
// which pre-complements one input and reuses the same doubling rounds.
func ksSub[T Uint](x, y *Masked[T]) (*Masked[T], error) {
	nx, err := Not(x)
	if err != nil {
		return nil, err
	}
	defer nx.Free()

	t, err := ksAdd(nx, y)
	if err != nil {
		return nil, err
	}
	defer t.Free()

	return Not(t)
}

func freeAll[T Uint](vals []*Masked[T]) {
	for _, m := range vals {
		m.Free()
	}
}

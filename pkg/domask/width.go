package domask

// Width conversion packs k narrow masked values into one wide masked value
// and back, for the ratios 2:1, 4:1 and 8:1. The packing is a per-share lane
// operation: narrow share i of input j lands at bit offset j*w of wide share
// i, so the secret is never touched. Lane packing is only XOR-linear, so
// operands are coerced to the Boolean domain first.

// Widen packs bits(W)/bits(N) narrow values into one wide value. The inputs
// must all carry the same signature; they are left intact.
func Widen[W, N Uint](narrow []*Masked[N]) (*Masked[W], error) {
	nw := widthOf[N]()
	k, err := widthRatio[W, N]("Widen")
	if err != nil {
		return nil, err
	}
	if len(narrow) != k {
		return nil, errorf("Widen", "%w: need %d values of width %d, got %d", ErrInvalidOrder, k, nw, len(narrow))
	}
	for _, m := range narrow {
		if err := checkPair("Widen", narrow[0], m); err != nil {
			return nil, err
		}
	}
	for _, m := range narrow {
		if err := ToBoolean(m); err != nil {
			return nil, err
		}
	}

	out, err := Allocate[W](Boolean, narrow[0].order)
	if err != nil {
		return nil, err
	}
	for j, m := range narrow {
		for i, s := range m.shares {
			out.shares[i] |= W(s) << (j * nw)
		}
	}
	barrier(out.shares)
	return out, nil
}

// Narrow slices one wide value into bits(W)/bits(N) narrow values, the
// inverse of Widen. The input is left intact (beyond domain coercion).
func Narrow[N, W Uint](wide *Masked[W]) ([]*Masked[N], error) {
	nw := widthOf[N]()
	k, err := widthRatio[W, N]("Narrow")
	if err != nil {
		return nil, err
	}
	if err := checkOne("Narrow", wide); err != nil {
		return nil, err
	}
	if err := ToBoolean(wide); err != nil {
		return nil, err
	}

	out, err := AllocateMany[N](Boolean, wide.order, k)
	if err != nil {
		return nil, err
	}
	for j, m := range out {
		for i, s := range wide.shares {
			m.shares[i] = N(s >> (j * nw))
		}
		barrier(m.shares)
	}
	return out, nil
}

func widthRatio[W, N Uint](op string) (int, error) {
	ww, nw := widthOf[W](), widthOf[N]()
	k := ww / nw
	if k*nw != ww || (k != 2 && k != 4 && k != 8) {
		return 0, errorf(op, "%w: unsupported width ratio %d:%d", ErrInvalidOrder, ww, nw)
	}
	return k, nil
}

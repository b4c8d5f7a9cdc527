package domask

// boolPair validates and coerces both operands into the Boolean domain.
// Signatures are checked before any conversion so a rejected call consumes no
// randomness. Coercion mutates the operands in place, as do all gadgets.
func boolPair[T Uint](op string, a, b *Masked[T]) error {
	if err := checkPair(op, a, b); err != nil {
		return err
	}
	if err := ToBoolean(a); err != nil {
		return err
	}
	return ToBoolean(b)
}

// Xor returns a fresh Boolean-masked value holding a XOR b. Boolean masking
// is XOR-linear, so the shares combine independently.
func Xor[T Uint](a, b *Masked[T]) (*Masked[T], error) {
	if err := boolPair("Xor", a, b); err != nil {
		return nil, err
	}
	out, err := Allocate[T](Boolean, a.order)
	if err != nil {
		return nil, err
	}
	for i := range out.shares {
		out.shares[i] = a.shares[i] ^ b.shares[i]
	}
	barrier(out.shares)
	return out, nil
}

// And returns a fresh Boolean-masked value holding a AND b, computed with the
// Domain-Oriented Masking multiplication gadget: the diagonal terms are taken
// directly, and every cross-term pair is reshared with one fresh random word
// so no output share depends on more than one share of each input.
func And[T Uint](a, b *Masked[T]) (*Masked[T], error) {
	if err := boolPair("And", a, b); err != nil {
		return nil, err
	}
	out, err := Allocate[T](Boolean, a.order)
	if err != nil {
		return nil, err
	}
	n := a.order + 1
	for i := 0; i < n; i++ {
		out.shares[i] = a.shares[i] & b.shares[i]
	}
	r := randWords[T](n * (n - 1) / 2)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out.shares[i] ^= (a.shares[i] & b.shares[j]) ^ r[k]
			out.shares[j] ^= (a.shares[j] & b.shares[i]) ^ r[k]
			k++
		}
	}
	zeroizeWords(r)
	barrier(out.shares)
	return out, nil
}

// Or returns a fresh Boolean-masked value holding a OR b, derived from the
// identity a|b = (a^b) ^ (a&b).
func Or[T Uint](a, b *Masked[T]) (*Masked[T], error) {
	out, err := And(a, b)
	if err != nil {
		if e, ok := err.(*Error); ok {
			return nil, &Error{Op: "Or", Err: e.Err}
		}
		return nil, err
	}
	for i := range out.shares {
		out.shares[i] ^= a.shares[i] ^ b.shares[i]
	}
	barrier(out.shares)
	return out, nil
}

// Not returns a fresh Boolean-masked complement of a. Complementing only
// shares[0] complements the secret under XOR masking.
func Not[T Uint](a *Masked[T]) (*Masked[T], error) {
	if err := checkOne("Not", a); err != nil {
		return nil, err
	}
	if err := ToBoolean(a); err != nil {
		return nil, err
	}
	out, err := a.Clone(false)
	if err != nil {
		return nil, err
	}
	out.shares[0] = ^out.shares[0]
	barrier(out.shares)
	return out, nil
}

// Shl shifts left by n bits (mod bit length), applied to every share
// independently; shifts are XOR-linear.
func Shl[T Uint](a *Masked[T], n uint) (*Masked[T], error) {
	return shiftGadget("Shl", a, n, func(s T, k uint) T { return s << k })
}

// Shr shifts right by n bits (mod bit length), applied to every share
// independently.
func Shr[T Uint](a *Masked[T], n uint) (*Masked[T], error) {
	return shiftGadget("Shr", a, n, func(s T, k uint) T { return s >> k })
}

// Rotl rotates left by n bits (mod bit length), applied to every share
// independently.
func Rotl[T Uint](a *Masked[T], n uint) (*Masked[T], error) {
	w := uint(widthOf[T]())
	return shiftGadget("Rotl", a, n, func(s T, k uint) T {
		return s<<k | s>>(w-k)
	})
}

// Rotr rotates right by n bits (mod bit length), applied to every share
// independently.
func Rotr[T Uint](a *Masked[T], n uint) (*Masked[T], error) {
	w := uint(widthOf[T]())
	return shiftGadget("Rotr", a, n, func(s T, k uint) T {
		return s>>k | s<<(w-k)
	})
}

func shiftGadget[T Uint](op string, a *Masked[T], n uint, f func(T, uint) T) (*Masked[T], error) {
	if err := checkOne(op, a); err != nil {
		return nil, err
	}
	if err := ToBoolean(a); err != nil {
		return nil, err
	}
	out, err := Allocate[T](Boolean, a.order)
	if err != nil {
		return nil, err
	}
	k := n % uint(widthOf[T]())
	for i := range out.shares {
		out.shares[i] = f(a.shares[i], k)
	}
	barrier(out.shares)
	return out, nil
}

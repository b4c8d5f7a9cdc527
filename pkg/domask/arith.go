package domask

// arithPair validates and coerces both operands into the Arithmetic domain.
func arithPair[T Uint](op string, a, b *Masked[T]) error {
	if err := checkPair(op, a, b); err != nil {
		return err
	}
	if err := ToArithmetic(a); err != nil {
		return err
	}
	return ToArithmetic(b)
}

// Add returns a fresh Arithmetic-masked value holding a + b. Addition is
// share-wise linear under subtractive masking.
func Add[T Uint](a, b *Masked[T]) (*Masked[T], error) {
	if err := arithPair("Add", a, b); err != nil {
		return nil, err
	}
	out, err := Allocate[T](Arithmetic, a.order)
	if err != nil {
		return nil, err
	}
	for i := range out.shares {
		out.shares[i] = a.shares[i] + b.shares[i]
	}
	barrier(out.shares)
	return out, nil
}

// Sub returns a fresh Arithmetic-masked value holding a - b.
func Sub[T Uint](a, b *Masked[T]) (*Masked[T], error) {
	if err := arithPair("Sub", a, b); err != nil {
		return nil, err
	}
	out, err := Allocate[T](Arithmetic, a.order)
	if err != nil {
		return nil, err
	}
	for i := range out.shares {
		out.shares[i] = a.shares[i] - b.shares[i]
	}
	barrier(out.shares)
	return out, nil
}

// Mul returns a fresh Arithmetic-masked value holding a * b. It mirrors the
// DOM And gadget with products for cross terms and +r/-r folding for the
// resharing, followed by an explicit refresh: unlike the Boolean case, the
// direct resharing alone does not leave the arithmetic output uniformly
// masked.
func Mul[T Uint](a, b *Masked[T]) (*Masked[T], error) {
	if err := arithPair("Mul", a, b); err != nil {
		return nil, err
	}
	out, err := Allocate[T](Arithmetic, a.order)
	if err != nil {
		return nil, err
	}
	n := a.order + 1

	// Work on the additive view: negating the tail shares turns the
	// subtractive sharing s0 - s1 - ... into a plain sum.
	xa := additiveView(a.shares)
	xb := additiveView(b.shares)
	acc := make([]T, n)
	for i := 0; i < n; i++ {
		acc[i] = xa[i] * xb[i]
	}
	r := randWords[T](n * (n - 1) / 2)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			acc[i] += xa[i]*xb[j] + r[k]
			acc[j] += xa[j]*xb[i] - r[k]
			k++
		}
	}
	fromAdditive(out.shares, acc)

	zeroizeWords(r)
	zeroizeWords(acc)
	zeroizeWords(xa)
	zeroizeWords(xb)
	barrier(out.shares)

	out.Refresh()
	return out, nil
}

// additiveView copies shares with the tail negated, so the copy sums to the
// secret. Each share word is individually uniform, so negating it in the
// clear reveals nothing.
func additiveView[T Uint](shares []T) []T {
	out := make([]T, len(shares))
	out[0] = shares[0]
	for i := 1; i < len(shares); i++ {
		out[i] = -shares[i]
	}
	return out
}

// fromAdditive writes an additive sharing back into subtractive form.
func fromAdditive[T Uint](dst, add []T) {
	dst[0] = add[0]
	for i := 1; i < len(add); i++ {
		dst[i] = -add[i]
	}
}

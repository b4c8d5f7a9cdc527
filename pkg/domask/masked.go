package domask

import "math/bits"

// Uint constrains the supported share widths: 8, 16, 32 and 64 bits.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Domain records which sharing invariant a masked value currently satisfies.
type Domain uint8

const (
	// Boolean masking: the XOR of all shares equals the secret.
	Boolean Domain = iota

	// Arithmetic masking: shares[0] minus the sum of shares[1:] equals the
	// secret, modulo 2^bitlen (subtractive masking).
	Arithmetic
)

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case Boolean:
		return "boolean"
	case Arithmetic:
		return "arithmetic"
	default:
		return "unknown"
	}
}

// Masked holds the order+1 shares of one secret of width T. A Masked value
// owns its share buffer exclusively; no aliasing between distinct values is
// permitted. Values are not safe for concurrent mutation.
type Masked[T Uint] struct {
	shares []T
	domain Domain
	order  int
}

// widthOf returns the bit length of the share type.
func widthOf[T Uint]() int {
	return bits.Len64(uint64(^T(0)))
}

// allocHook, when set by tests, simulates share-storage allocation failure.
// Go's runtime cannot report one, but batch callers still need the
// all-or-nothing unwind path exercised.
var allocHook func() error

// Allocate returns a masked value of the given domain and order with all
// shares zeroed.
func Allocate[T Uint](domain Domain, order int) (*Masked[T], error) {
	if err := checkOrder("Allocate", order); err != nil {
		return nil, err
	}
	if allocHook != nil {
		if err := allocHook(); err != nil {
			return nil, errorf("Allocate", "%w: %v", ErrAllocation, err)
		}
	}
	return &Masked[T]{
		shares: make([]T, order+1),
		domain: domain,
		order:  order,
	}, nil
}

// Mask splits value into order+1 shares of the given domain. The tail shares
// are drawn from the entropy source, uniformly random and independent of the
// value; shares[0] is computed so the domain invariant holds immediately.
func Mask[T Uint](value T, domain Domain, order int) (*Masked[T], error) {
	m, err := Allocate[T](domain, order)
	if err != nil {
		return nil, err
	}
	r := randWords[T](order)
	copy(m.shares[1:], r)
	s0 := value
	if domain == Boolean {
		for _, v := range r {
			s0 ^= v
		}
	} else {
		for _, v := range r {
			s0 += v
		}
	}
	m.shares[0] = s0
	zeroizeWords(r)
	barrier(m.shares)
	return m, nil
}

// Unmask folds the shares back into the secret. Pure and non-mutating.
func (m *Masked[T]) Unmask() T {
	if m == nil || len(m.shares) == 0 {
		return 0
	}
	v := m.shares[0]
	if m.domain == Boolean {
		for _, s := range m.shares[1:] {
			v ^= s
		}
	} else {
		for _, s := range m.shares[1:] {
			v -= s
		}
	}
	return v
}

// Refresh rerandomizes the share representation without changing the secret.
// Exactly order fresh random words are consumed.
func (m *Masked[T]) Refresh() {
	r := randWords[T](m.order)
	if m.domain == Boolean {
		for i, v := range r {
			m.shares[0] ^= v
			m.shares[i+1] ^= v
		}
	} else {
		for i, v := range r {
			m.shares[0] += v
			m.shares[i+1] += v
		}
	}
	zeroizeWords(r)
	barrier(m.shares)
}

// Clone deep-copies the value. With zeroShares set, the copy keeps the
// metadata but zeroed shares, yielding a compatible scratch value.
func (m *Masked[T]) Clone(zeroShares bool) (*Masked[T], error) {
	c, err := Allocate[T](m.domain, m.order)
	if err != nil {
		return nil, err
	}
	if !zeroShares {
		copy(c.shares, m.shares)
	}
	return c, nil
}

// Free overwrites every share with zero before releasing the buffer, so no
// secret residue survives in freed memory. Nil-safe and idempotent.
func (m *Masked[T]) Free() {
	if m == nil || m.shares == nil {
		return
	}
	zeroizeWords(m.shares)
	m.shares = nil
	m.order = 0
	m.domain = Boolean
}

// Order returns the masking order (number of random shares beyond the first).
func (m *Masked[T]) Order() int {
	return m.order
}

// Domain returns the current sharing domain.
func (m *Masked[T]) Domain() Domain {
	return m.domain
}

// BitLen returns the width of each share in bits.
func (m *Masked[T]) BitLen() int {
	return widthOf[T]()
}

// ShareBytes returns the size of one share in bytes.
func (m *Masked[T]) ShareBytes() int {
	return widthOf[T]() / 8
}

// TotalBytes returns the size of the whole share buffer in bytes.
func (m *Masked[T]) TotalBytes() int {
	return len(m.shares) * m.ShareBytes()
}

// Signature packs order and bit length into a compact tag so mismatched
// operands can be rejected without comparing full metadata.
func (m *Masked[T]) Signature() uint16 {
	return uint16(m.order)<<8 | uint16(widthOf[T]())
}

// Shares returns a copy of the share buffer. The copy is the caller's to
// zeroize; the internal buffer is never exposed.
func (m *Masked[T]) Shares() []T {
	out := make([]T, len(m.shares))
	copy(out, m.shares)
	return out
}

// checkPair rejects nil, freed or signature-incompatible operands before any
// randomness is consumed, so a rejected gadget has no observable side effect.
func checkPair[T Uint](op string, a, b *Masked[T]) error {
	if a == nil || b == nil || a.shares == nil || b.shares == nil {
		return errorf(op, "%w: nil or freed operand", ErrDomainMismatch)
	}
	if a.Signature() != b.Signature() {
		return errorf(op, "%w: signatures %#04x and %#04x", ErrDomainMismatch, a.Signature(), b.Signature())
	}
	return nil
}

func checkOne[T Uint](op string, a *Masked[T]) error {
	if a == nil || a.shares == nil {
		return errorf(op, "%w: nil or freed operand", ErrDomainMismatch)
	}
	return nil
}

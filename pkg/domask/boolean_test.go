package domask

import (
	"math/bits"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBinaryGadget[T Uint](t *testing.T, rng *mrand.Rand, domain Domain,
	gadget func(a, b *Masked[T]) (*Masked[T], error), ref func(a, b T) T) {
	t.Helper()
	for order := 1; order <= 3; order++ {
		for trial := 0; trial < 100; trial++ {
			av, bv := T(rng.Uint64()), T(rng.Uint64())
			a, err := Mask(av, domain, order)
			if err != nil {
				t.Fatalf("Mask a: %v", err)
			}
			b, err := Mask(bv, domain, order)
			if err != nil {
				t.Fatalf("Mask b: %v", err)
			}
			out, err := gadget(a, b)
			if err != nil {
				t.Fatalf("gadget(order %d): %v", order, err)
			}
			if got, want := out.Unmask(), ref(av, bv); got != want {
				t.Fatalf("order %d: got %d, want %d (a=%d b=%d)", order, got, want, av, bv)
			}
			out.Free()
			a.Free()
			b.Free()
		}
	}
}

func testBooleanGadgets[T Uint](t *testing.T, rng *mrand.Rand) {
	t.Run("Xor", func(t *testing.T) {
		testBinaryGadget(t, rng, Boolean, Xor[T], func(a, b T) T { return a ^ b })
	})
	t.Run("And", func(t *testing.T) {
		testBinaryGadget(t, rng, Boolean, And[T], func(a, b T) T { return a & b })
	})
	t.Run("Or", func(t *testing.T) {
		testBinaryGadget(t, rng, Boolean, Or[T], func(a, b T) T { return a | b })
	})
}

func TestBooleanGadgets(t *testing.T) {
	useSeededEntropy(t, 10)
	rng := mrand.New(mrand.NewSource(11))
	t.Run("8", func(t *testing.T) { testBooleanGadgets[uint8](t, rng) })
	t.Run("16", func(t *testing.T) { testBooleanGadgets[uint16](t, rng) })
	t.Run("32", func(t *testing.T) { testBooleanGadgets[uint32](t, rng) })
	t.Run("64", func(t *testing.T) { testBooleanGadgets[uint64](t, rng) })
}

func testUnaryGadgets[T Uint](t *testing.T, rng *mrand.Rand) {
	w := widthOf[T]()
	for order := 1; order <= 3; order++ {
		for trial := 0; trial < 100; trial++ {
			v := T(rng.Uint64())
			n := uint(rng.Intn(2 * w)) // distances beyond the width must reduce

			a, err := Mask(v, Boolean, order)
			if err != nil {
				t.Fatalf("Mask: %v", err)
			}

			checks := []struct {
				name string
				got  func() (*Masked[T], error)
				want T
			}{
				{"Not", func() (*Masked[T], error) { return Not(a) }, ^v},
				{"Shl", func() (*Masked[T], error) { return Shl(a, n) }, v << (n % uint(w))},
				{"Shr", func() (*Masked[T], error) { return Shr(a, n) }, v >> (n % uint(w))},
				{"Rotl", func() (*Masked[T], error) { return Rotl(a, n) }, rotlRef(v, n%uint(w))},
				{"Rotr", func() (*Masked[T], error) { return Rotr(a, n) }, rotlRef(v, uint(w)-n%uint(w))},
			}
			for _, c := range checks {
				out, err := c.got()
				if err != nil {
					t.Fatalf("%s: %v", c.name, err)
				}
				if got := out.Unmask(); got != c.want {
					t.Fatalf("%s(order %d, v=%d, n=%d) = %d, want %d", c.name, order, v, n, got, c.want)
				}
				out.Free()
			}
			a.Free()
		}
	}
}

func rotlRef[T Uint](v T, n uint) T {
	w := uint(widthOf[T]())
	n %= w
	if n == 0 {
		return v
	}
	return v<<n | v>>(w-n)
}

func TestShiftRotateNot(t *testing.T) {
	useSeededEntropy(t, 12)
	rng := mrand.New(mrand.NewSource(13))
	t.Run("8", func(t *testing.T) { testUnaryGadgets[uint8](t, rng) })
	t.Run("16", func(t *testing.T) { testUnaryGadgets[uint16](t, rng) })
	t.Run("32", func(t *testing.T) { testUnaryGadgets[uint32](t, rng) })
	t.Run("64", func(t *testing.T) { testUnaryGadgets[uint64](t, rng) })
}

func TestRotateAgainstStdlib(t *testing.T) {
	useSeededEntropy(t, 14)
	rng := mrand.New(mrand.NewSource(15))
	for trial := 0; trial < 100; trial++ {
		v := rng.Uint64()
		n := uint(rng.Intn(64))
		a, err := Mask(v, Boolean, 2)
		require.NoError(t, err)
		out, err := Rotl(a, n)
		require.NoError(t, err)
		require.Equal(t, bits.RotateLeft64(v, int(n)), out.Unmask())
		out.Free()
		a.Free()
	}
}

// TestAndCoercesArithmeticOperands masks into the Arithmetic domain and lets
// the gadget invoke the domain converter silently.
func TestAndCoercesArithmeticOperands(t *testing.T) {
	useSeededEntropy(t, 16)
	a, err := Mask[uint32](0xA5A5A5A5, Arithmetic, 2)
	require.NoError(t, err)
	defer a.Free()
	b, err := Mask[uint32](0x0F0F0F0F, Boolean, 2)
	require.NoError(t, err)
	defer b.Free()

	out, err := And(a, b)
	require.NoError(t, err)
	defer out.Free()

	require.Equal(t, uint32(0xA5A5A5A5&0x0F0F0F0F), out.Unmask())
	require.Equal(t, Boolean, a.Domain(), "operand should have been coerced in place")
}

// Masking 0xDEADBEEF at order 2, AND against an all-ones mask at the same
// order, must unmask to 0xDEADBEEF.
func TestAndAllOnesScenario(t *testing.T) {
	useSeededEntropy(t, 17)
	a, err := Mask[uint32](0xDEADBEEF, Boolean, 2)
	require.NoError(t, err)
	defer a.Free()
	require.Len(t, a.Shares(), 3)

	b, err := Mask[uint32](0xFFFFFFFF, Boolean, 2)
	require.NoError(t, err)
	defer b.Free()

	out, err := And(a, b)
	require.NoError(t, err)
	defer out.Free()
	require.Equal(t, uint32(0xDEADBEEF), out.Unmask())
}

// Masking 0 and 1 as 8-bit Boolean values at order 2 and XOR-ing them must
// unmask to 1.
func TestXorZeroOneScenario(t *testing.T) {
	useSeededEntropy(t, 18)
	zero, err := Mask[uint8](0, Boolean, 2)
	require.NoError(t, err)
	defer zero.Free()
	one, err := Mask[uint8](1, Boolean, 2)
	require.NoError(t, err)
	defer one.Free()

	out, err := Xor(zero, one)
	require.NoError(t, err)
	defer out.Free()
	require.Equal(t, uint8(1), out.Unmask())
}

func TestGadgetRejectsMismatchedOperands(t *testing.T) {
	useSeededEntropy(t, 19)
	a, err := Mask[uint16](1, Boolean, 1)
	require.NoError(t, err)
	defer a.Free()
	b, err := Mask[uint16](2, Boolean, 2)
	require.NoError(t, err)
	defer b.Free()

	for name, f := range map[string]func() error{
		"Xor": func() error { _, err := Xor(a, b); return err },
		"And": func() error { _, err := And(a, b); return err },
		"Or":  func() error { _, err := Or(a, b); return err },
		"Add": func() error { _, err := Add(a, b); return err },
		"Sub": func() error { _, err := Sub(a, b); return err },
		"Mul": func() error { _, err := Mul(a, b); return err },
	} {
		require.ErrorIs(t, f(), ErrDomainMismatch, name)
	}

	// Rejection happens before any coercion side effect.
	require.Equal(t, Boolean, a.Domain())
	require.Equal(t, Boolean, b.Domain())
}

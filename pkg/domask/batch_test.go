package domask

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Forcing the third allocation of a five-element batch to fail must unwind
// the first two before the error returns.
func TestBatchAllocationAtomicity(t *testing.T) {
	useSeededEntropy(t, 60)

	calls := 0
	allocHook = func() error {
		calls++
		if calls == 3 {
			return errors.New("injected failure")
		}
		return nil
	}
	t.Cleanup(func() { allocHook = nil })

	vals, err := AllocateMany[uint32](Boolean, 2, 5)
	require.ErrorIs(t, err, ErrAllocation)
	require.Nil(t, vals)
	require.Equal(t, 3, calls, "batch must stop at the first failure")

	calls = 0
	masked, err := MaskMany([]uint32{1, 2, 3, 4, 5}, Boolean, 2)
	require.ErrorIs(t, err, ErrAllocation)
	require.Nil(t, masked)
	require.Equal(t, 3, calls)
}

func TestBatchRejectsSingleton(t *testing.T) {
	_, err := AllocateMany[uint8](Boolean, 1, 1)
	require.ErrorIs(t, err, ErrInvalidOrder)

	_, err = MaskMany([]uint8{7}, Boolean, 1)
	require.ErrorIs(t, err, ErrInvalidOrder)
}

func TestFreeManySkipMask(t *testing.T) {
	useSeededEntropy(t, 61)
	vals, err := MaskMany([]uint16{10, 20, 30}, Boolean, 2)
	require.NoError(t, err)

	kept := vals[1] // ownership moved elsewhere
	handles := append([]*Masked[uint16]{}, vals...)

	FreeMany(vals, Bitmask(1<<1))

	require.Nil(t, handles[0].shares)
	require.NotNil(t, kept.shares)
	require.Nil(t, handles[2].shares)
	for i := range vals {
		require.Nil(t, vals[i])
	}

	require.Equal(t, uint16(20), kept.Unmask())
	kept.Free()
}

func TestRefreshMany(t *testing.T) {
	useSeededEntropy(t, 62)
	vals, err := MaskMany([]uint32{100, 200}, Arithmetic, 2)
	require.NoError(t, err)
	defer FreeMany(vals, 0)

	RefreshMany(vals)
	require.Equal(t, uint32(100), vals[0].Unmask())
	require.Equal(t, uint32(200), vals[1].Unmask())
}

func TestBitmask(t *testing.T) {
	m := Bitmask(0b101)
	require.True(t, m.Has(0))
	require.False(t, m.Has(1))
	require.True(t, m.Has(2))
	require.False(t, m.Has(64))
}

// Bitmask addresses only the first 64 indices; in a larger batch the elements
// past index 63 are freed no matter what the mask says.
func TestFreeManyBeyondBitmaskRange(t *testing.T) {
	useSeededEntropy(t, 63)
	values := make([]uint8, 66)
	vals, err := MaskMany(values, Boolean, 1)
	require.NoError(t, err)

	kept := vals[63]
	tail := vals[65]

	FreeMany(vals, Bitmask(1<<63))

	require.NotNil(t, kept.shares)
	require.Nil(t, tail.shares, "elements past index 63 must be freed")
	kept.Free()
}

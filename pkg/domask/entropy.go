package domask

import (
	"context"
	"crypto/rand"

	"github.com/hsiuhsiu/domask-go/pkg/domask/logging"
)

// EntropySource supplies cryptographically secure random bytes. Fill either
// fills p completely or does not return: the masking engine has no recovery
// path for partial randomness, so a failing source must terminate the
// process. The default source wraps crypto/rand.
type EntropySource interface {
	Fill(p []byte)
}

type systemSource struct{}

func (systemSource) Fill(p []byte) {
	if _, err := rand.Read(p); err != nil {
		// A dead CSPRNG is unrecoverable for a masking engine; continuing
		// with predictable shares would silently void the security order.
		logging.New(nil).Error(context.Background(), "domask: entropy source failed", "err", err)
		panic("domask: entropy source failed: " + err.Error())
	}
}

// randWords draws n fresh random share words from the configured entropy
// source. The byte scratch is zeroized before returning; the caller owns and
// must zeroize the returned words.
func randWords[T Uint](n int) []T {
	if n == 0 {
		return nil
	}
	w := widthOf[T]() / 8
	buf := make([]byte, n*w)
	cfgEntropy.Fill(buf)
	out := make([]T, n)
	for i := 0; i < n; i++ {
		var v uint64
		for j := 0; j < w; j++ {
			v |= uint64(buf[i*w+j]) << (8 * j)
		}
		out[i] = T(v)
	}
	ZeroizeBytes(buf)
	return out
}

package domask

import "runtime"

// ZeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
//
// This follows the pattern recommended in golang/go#33325 and used by security-
// focused libraries. While this cannot guarantee complete memory sanitization
// due to Go's garbage collector, it represents current best practice in the Go
// ecosystem for sensitive memory.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	// Prevent dead store elimination per golang/go#33325
	runtime.KeepAlive(buf)
}

// zeroizeWords is the share-word counterpart of ZeroizeBytes.
func zeroizeWords[T Uint](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// barrier pins the share buffer after a randomized gadget step. The secure
// gadgets interleave fresh randomness with partial products; the stores must
// not be elided or reordered away by the optimizer, or the computation leaks
// at a lower order than requested.
func barrier[T Uint](buf []T) {
	runtime.KeepAlive(buf)
}

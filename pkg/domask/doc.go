// Package domask implements higher-order masked integer arithmetic for
// defeating power and EM side-channel analysis. Every secret value is split
// into order+1 shares such that no proper subset of shares reveals anything
// about the secret, and every logical operation is computed directly on
// shares. The secret is never materialized in an unmasked register except at
// explicit Unmask boundaries.
//
// # Architecture
//
// The package is organized around a single generic type, Masked[T], which
// carries the shares of one secret of width 8, 16, 32, or 64 bits in one of
// two domains:
//
//   - Boolean: the XOR of all shares equals the secret.
//   - Arithmetic: shares[0] minus the sum of the remaining shares equals the
//     secret, modulo 2^bitlen (subtractive masking).
//
// Boolean gadgets (Xor, And, Or, Not, shifts, rotates) and arithmetic gadgets
// (Add, Sub, Mul) coerce their operands into the matching domain, invoking
// the Boolean/arithmetic domain converters silently when needed. The secure
// nonlinear gadgets (And, Mul) use the Domain-Oriented Masking resharing
// construction: one fresh random word per unordered share pair.
//
// The domain converters are the heart of the package: Boolean to arithmetic
// runs a recursive affine decomposition over psi(m, r) = (m XOR r) - r, and
// arithmetic to Boolean runs a carry-save-adder reduction tree followed by a
// masked Kogge-Stone carry propagator.
//
// # Security Considerations
//
//   - Masked values are not safe for concurrent mutation. Each value assumes
//     exclusive ownership per call site; callers sharing a value across
//     goroutines must synchronize externally.
//   - Free overwrites all share bytes before releasing them. Go's garbage
//     collector may still have made copies; this is best effort, consistent
//     with the rest of the Go ecosystem.
//   - Randomness is drawn from a caller-configurable EntropySource. The
//     default source wraps crypto/rand and treats failure as fatal.
//   - This package addresses value leakage through shares. It does not close
//     instruction-level timing channels and carries no formal leakage proof.
package domask

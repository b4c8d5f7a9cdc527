// Package internalcheck provides internal validation and testing utilities.
//
// This package contains static policy checks enforced over the core masking
// package: secret-dependent byte comparisons and hex formatting of share
// material are rejected at test time. It is not intended for external use and
// the API may change without notice.
//
// # Internal Use Only
//
// This package is part of the internal implementation and should not be
// imported by applications. Use the public API provided by pkg/domask
// instead.
package internalcheck

// Package logging provides a minimal logging facade for the masking engine.
//
// The Logger interface wraps a subset of the standard library's log/slog
// functionality. It is intentionally small so applications can plug in custom
// implementations for testing, redaction, or integration with an existing
// logging stack.
//
// # Redaction Support
//
// Share buffers and masked intermediates must never reach a log line. Use
// Redacted to mark attributes whose value was deliberately withheld:
//
//	logger.Debug(ctx, "masked operand",
//	    logging.Redacted("shares"),
//	    "order", 2,
//	    "width", 32,
//	)
//
// # Security Considerations
//
//   - Never log shares, refresh randomness, or unmasked values.
//   - Metadata (order, width, domain) is safe to log.
//   - Ensure log storage is secure and access-controlled.
package logging

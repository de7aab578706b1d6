// Package errs provides the standard error types used across the fulfillment
// engine: required values, invalid values, out-of-range values, and failed
// lookups.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying the failure details and an optional cause
//   - Constructor functions with and without cause
//   - Error() formatting to a single log line
//   - Unwrap() returning the sentinel, so callers classify failures with
//     errors.Is instead of inspecting messages
package errs

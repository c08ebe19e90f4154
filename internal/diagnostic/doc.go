// Package diagnostic provides structured notes produced while loading input
// documents.
//
// Key capabilities:
//   - Warnings for input that exports but probably not as intended
//   - Infos explaining decisions taken on the author's behalf
//   - Logging through a charm logger at matching levels
package diagnostic

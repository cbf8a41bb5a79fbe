// Package shared provides cross-cutting utilities that do not belong to a
// specific layer. It currently contains only test helpers.
//
// # Structure
//
//   - testutil: log capture helpers used by package tests
package shared

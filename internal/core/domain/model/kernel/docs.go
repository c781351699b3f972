// Package kernel provides the value objects shared by the agent and order aggregates.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Point: a [lng, lat] coordinate with haversine distance in kilometres
//   - Ring: a simple zone polygon with an edge-inclusive containment test
//   - Money and BasisPoints: integer amounts and payout fractions
//
// All values are immutable and safe for concurrent use; the geometry helpers
// are pure functions.
package kernel

// Package order contains the order aggregate: the order itself, its items,
// the physical pieces tracked under each item, the append-only processing step
// log, and the append-only status history.
//
// The aggregate enforces the core lifecycle invariants:
//   - the current status is always a configured workflow step, and always
//     equals the to-status of the most recent history entry
//   - piece sequence numbers per item always form {1..N}, re-sequenced on
//     every insert and delete
//   - processing step sequences are strictly increasing per item, and the
//     finishing step is a precondition for item completion
//   - item total price equals unit price times quantity unless explicitly
//     overridden with a recorded reason
//
// Orders are created through NewOrder / NewQuickDropOrder and reconstructed
// from persistence through RestoreOrder. Direct struct initialization yields
// an instance that fails Validate.
package order

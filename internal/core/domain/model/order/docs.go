// Package order provides domain entities and business logic for order
// management in the fulfillment pipeline. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root holding the cart snapshot, cost breakdown,
//     payment flag, and delivery metadata
//   - Status: A state machine that enforces valid pipeline transitions
//   - DeliveryMetadata: The courier leg attached once a rider is assigned
//
// Key business rules:
//   - The cost breakdown is computed exactly once at construction
//   - The paid flag only ever moves false -> true
//   - Status follows the declared workflow Pending -> Preparing ->
//     ReadyForPickup -> AssignedToDelivery -> PickedUp -> Delivered
//   - Undeclared transitions fail without side effect
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

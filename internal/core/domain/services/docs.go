// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment engine. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - RiderDispatcher: A domain service for selecting the nearest available
//     rider for a delivery leg, parameterized over the distance metric
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services

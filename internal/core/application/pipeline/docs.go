// Package pipeline contains the application layer of the fulfillment engine:
// the kitchen and delivery stages and the orchestrator that drives orders
// through them.
//
// Per-order work runs in goroutines; milestones flow back to a single event
// loop (Orchestrator.Run) that decides the next step. The redispatch job
// feeds the same loop, so there is exactly one place where pipeline decisions
// are made.
package pipeline

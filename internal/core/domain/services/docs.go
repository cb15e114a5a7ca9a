// Package services contains stateless domain services that coordinate
// behavior across aggregates: the ready-by scheduler (pure calculation), the
// quality-gate evaluator consulted by the order state machine, and the order
// splitter that moves items and pieces onto child orders.
package services

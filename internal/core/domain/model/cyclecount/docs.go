// Package cyclecount provides the domain model for scheduled inventory verification.
//
// The package includes:
//   - Plan: the aggregate root for a cycle count, with its lifecycle state machine
//   - Entry: one item/location comparison of system and physically counted quantity
//   - CountType: the policy that decides which entries a plan generates when started
//   - RecurringSchedule: a cron-driven template from which plans are created
//
// Plan lifecycle:
//
//	SCHEDULED ──> IN_PROGRESS ──> COMPLETED ──> RECONCILED
//	    │              │
//	    └──────────────┴──> CANCELLED
//
// Entry variance lifecycle:
//
//	PENDING ──┬──> AUTO_ADJUSTED
//	          ├──> APPROVED
//	          └──> REJECTED
//
// Variance is always derived from the two quantities and never stored on its own.
// An entry carries an adjustment transaction reference if and only if it is
// AUTO_ADJUSTED, or APPROVED with a nonzero variance.
package cyclecount

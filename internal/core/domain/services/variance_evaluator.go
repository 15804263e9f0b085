package services

import (
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/tolerance"

	"github.com/shopspring/decimal"
)

// AlertPriority is the priority attached to variance alerts.
type AlertPriority string

const (
	PriorityHigh   AlertPriority = "HIGH"
	PriorityUrgent AlertPriority = "URGENT"
)

// urgentPercent is the variance percent above which alerts are urgent.
var urgentPercent = decimal.NewFromInt(10)

// VarianceDecision is the outcome of checking a variance against a policy.
type VarianceDecision struct {
	AutoAdjust bool
	Alert      bool
	Priority   AlertPriority
}

// EvaluateVariance auto-adjusts when |percent| is within the policy's
// auto-adjust threshold. Otherwise the entry waits for review, and an alert is
// raised when |percent| exceeds twice the threshold.
func EvaluateVariance(percent decimal.Decimal, policy tolerance.Policy) VarianceDecision {
	if policy.AllowsAutoAdjust(percent) {
		return VarianceDecision{AutoAdjust: true}
	}
	if !policy.RequiresAlert(percent) {
		return VarianceDecision{}
	}

	priority := PriorityHigh
	if percent.Abs().GreaterThan(urgentPercent) {
		priority = PriorityUrgent
	}
	return VarianceDecision{Alert: true, Priority: priority}
}

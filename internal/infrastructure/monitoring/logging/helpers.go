package logging

import "time"

// Canonical field keys shared by the service and CLI layers.
const (
	FieldRunID     = "run_id"
	FieldQueryID   = "query_id"
	FieldTargetID  = "target_id"
	FieldMode      = "mode"
	FieldOperation = "operation"
)

// SlowOperationThreshold is the duration above which LogOperationDuration
// escalates to WARN.
var SlowOperationThreshold = 2 * time.Second

// LogOperationDuration records how long op took since start.
func LogOperationDuration(l Logger, op string, start time.Time, fields ...Field) {
	elapsed := time.Since(start)
	all := append([]Field{
		String(FieldOperation, op),
		Int64("duration_ms", elapsed.Milliseconds()),
	}, fields...)
	if elapsed > SlowOperationThreshold {
		l.Warn("slow operation", all...)
		return
	}
	l.Info("operation completed", all...)
}

//Personal.AI order the ending

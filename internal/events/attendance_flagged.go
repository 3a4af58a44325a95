package events

import "time"

// AttendanceFlaggedTopic carries clock events whose implied travel speed is
// physically impossible. Consumers are advisory; the ledger row is already
// committed by the time this fires.
const AttendanceFlaggedTopic = "hr.attendance.flagged.v1"

type AttendanceFlaggedEvent struct {
	EventType  string    `json:"event_type"`
	EventID    string    `json:"event_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

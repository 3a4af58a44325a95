package events

import "time"

// PayslipIssuedTopic is consumed by the mail dispatcher. The payslip document
// is already rendered and stored when the event is published; the payload only
// points at it.
const PayslipIssuedTopic = "hr.payslip.issued.v1"

type PayslipIssuedEvent struct {
	EventType    string    `json:"event_type"`
	PayslipID    string    `json:"payslip_id"`
	CompanyID    string    `json:"company_id"`
	EmployeeID   string    `json:"employee_id"`
	PeriodMonth  int       `json:"period_month"`
	PeriodYear   int       `json:"period_year"`
	DocumentPath string    `json:"document_path"`
	IssuedAt     time.Time `json:"issued_at"`
}

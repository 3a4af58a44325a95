package attendance

type RecordEventRequest struct {
	Kind           string  `json:"kind" binding:"required,oneof=CLOCK_IN CLOCK_OUT"`
	Latitude       float64 `json:"latitude" binding:"required"`
	Longitude      float64 `json:"longitude" binding:"required"`
	AccuracyMeters float64 `json:"accuracy_m"`
}

type AttendanceEventResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	EmployeeID     string  `json:"employee_id"`
	Kind           string  `json:"kind"`
	ServerTS       string  `json:"server_ts"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_m"`
	IsSuspicious   bool    `json:"is_suspicious"`
}

type NextKindResponse struct {
	NextKind string `json:"next_kind"`
}

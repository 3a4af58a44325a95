package domain

// EnforceRequest is the authorization question asked for every protected route:
// may this employee, within this company, perform action on resource?
type EnforceRequest struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"company_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
}

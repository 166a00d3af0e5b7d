package dto

// DepartmentStatusResponse is one department's SLA counts by bucket.
type DepartmentStatusResponse struct {
	Department string `json:"department"`
	Pending    int    `json:"pending"`
	Active     int    `json:"active"`
	Overdue    int    `json:"overdue"`
}

// SLAComplianceResponse is one SLA's compliance summary.
type SLAComplianceResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Compliance int    `json:"compliance"`
	Trend      string `json:"trend"`
}

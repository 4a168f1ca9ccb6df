package domain

// Application is a candidate's job application as listed on the dashboard.
type Application struct {
	ID        ID        `json:"id"`
	JobID     ID        `json:"job_id"`
	JobTitle  string    `json:"job_title,omitempty"`
	Company   string    `json:"company,omitempty"`
	Status    string    `json:"status"`
	AppliedAt Timestamp `json:"applied_at"`
}

// Company is an employer shown in the "Top Companies" panel.
type Company struct {
	Name     string
	Industry string
	Location string
	Verified bool
}

// TopCompanies is the static partner list on the jobs board.
var TopCompanies = []Company{
	{Name: "Nemesis Group", Industry: "HR Services", Location: "All India", Verified: true},
	{Name: "Partner HR Solutions", Industry: "Staffing", Location: "Delhi", Verified: true},
	{Name: "Tech Hiring Desk", Industry: "IT Staffing", Location: "Bangalore", Verified: false},
}

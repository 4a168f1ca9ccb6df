package domain

import "strconv"

// DashTotals are the all-time counts on the admin dashboard.
type DashTotals struct {
	Customers    int  `json:"customers"`
	Employees    int  `json:"employees"`
	Jobs         int  `json:"jobs"`
	ActiveJobs   *int `json:"active_jobs,omitempty"`
	Applications int  `json:"applications"`
}

// DashToday are today's deltas. Older backends report new_users instead of
// new_customers.
type DashToday struct {
	NewCustomers    *int `json:"new_customers,omitempty"`
	NewUsers        *int `json:"new_users,omitempty"`
	NewEmployees    *int `json:"new_employees,omitempty"`
	NewApplications int  `json:"new_applications"`
}

// DashSummary is the admin summary endpoint payload.
type DashSummary struct {
	Totals DashTotals `json:"totals"`
	Today  DashToday  `json:"today"`
}

// TodayCustomers returns new_customers, then new_users, then 0.
func (d DashSummary) TodayCustomers() int {
	switch {
	case d.Today.NewCustomers != nil:
		return *d.Today.NewCustomers
	case d.Today.NewUsers != nil:
		return *d.Today.NewUsers
	default:
		return 0
	}
}

// TodayEmployees returns new_employees or 0.
func (d DashSummary) TodayEmployees() int {
	if d.Today.NewEmployees != nil {
		return *d.Today.NewEmployees
	}
	return 0
}

// ActiveJobsLabel returns the active job count, or "-" when unknown.
func (d DashSummary) ActiveJobsLabel() string {
	if d.Totals.ActiveJobs == nil {
		return "-"
	}
	return strconv.Itoa(*d.Totals.ActiveJobs)
}

// AdminResources are the list pages of the admin console, in sidebar order.
var AdminResources = []string{"customers", "employees", "jobs", "applications"}

// Row is a generic admin table row.
type Row map[string]any

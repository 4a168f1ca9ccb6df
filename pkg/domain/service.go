package domain

// Service is an HR service offered by the company.
type Service struct {
	Slug    string
	Title   string
	Summary string
	Points  []string
	InMenu  bool // listed in the navbar services menu
}

// Services is the service catalog in menu order.
var Services = []Service{
	{
		Slug: "payroll", Title: "Payroll Services", InMenu: true,
		Summary: "End-to-end payroll processing with statutory compliance across India.",
		Points:  []string{"Monthly payroll runs", "PF, ESI and TDS filings", "Payslips and reimbursements"},
	},
	{
		Slug: "it-staffing", Title: "IT Staffing", InMenu: true,
		Summary: "Contract and permanent technology talent, screened by domain specialists.",
		Points:  []string{"Developers and QA", "Cloud and DevOps engineers", "Contract-to-hire options"},
	},
	{
		Slug: "staffing-solutions", Title: "Staffing Solutions", InMenu: true,
		Summary: "Flexible workforce for seasonal peaks, projects and long-term roles.",
		Points:  []string{"Temporary staffing", "Bulk hiring drives", "On-site workforce management"},
	},
	{
		Slug: "recruitment", Title: "Recruitment", InMenu: true,
		Summary: "Permanent hiring from sourcing to offer, for every level.",
		Points:  []string{"Executive search", "Campus hiring", "Assessment and interviews"},
	},
	{
		Slug: "training-development", Title: "Training & Development", InMenu: true,
		Summary: "Programs that build job-ready skills for new and existing teams.",
		Points:  []string{"Soft-skills workshops", "Leadership programs", "Certification tracks"},
	},
	{
		Slug: "hr-consulting", Title: "HR Consulting", InMenu: true,
		Summary: "Policies, structures and processes for growing organisations.",
		Points:  []string{"HR audits", "Policy handbooks", "Compensation benchmarking"},
	},
	{
		Slug: "customer-care-training", Title: "Customer Care Training",
		Summary: "Voice and chat support training for customer-facing teams.",
		Points:  []string{"Call handling", "Escalation etiquette", "CRM basics"},
	},
}

// MenuServices returns the services shown in the navbar menu.
func MenuServices() []Service {
	var out []Service
	for _, s := range Services {
		if s.InMenu {
			out = append(out, s)
		}
	}
	return out
}

// ServiceBySlug looks up a service by its URL slug.
func ServiceBySlug(slug string) (Service, bool) {
	for _, s := range Services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}

package domain

import (
	"math"
	"strconv"
	"strings"
)

// Job type and experience values used when the backend leaves them blank.
const (
	DefaultJobType    = "WFH"
	DefaultExperience = "All"
	FilterAll         = "All"
)

// JobTypes are the job type filter options shown on the board.
var JobTypes = []string{FilterAll, "WFH", "Office"}

// RawJob is a job as it arrives over the wire. Two historical shapes are in
// circulation: backend rows (description, job_type, total_experience,
// salary_min/max) and the older mock records (desc, type, exp, salary).
type RawJob struct {
	ID              ID       `json:"id"`
	Title           string   `json:"title,omitempty"`
	Location        string   `json:"location,omitempty"`
	Company         string   `json:"company,omitempty"`
	JobType         string   `json:"job_type,omitempty"`
	SalaryMin       *float64 `json:"salary_min,omitempty"`
	SalaryMax       *float64 `json:"salary_max,omitempty"`
	TotalExperience string   `json:"total_experience,omitempty"`
	Description     string   `json:"description,omitempty"`
	Status          string   `json:"status,omitempty"`

	Desc   string `json:"desc,omitempty"`
	Type   string `json:"type,omitempty"`
	Exp    string `json:"exp,omitempty"`
	Salary string `json:"salary,omitempty"`
}

// Job is the canonical job record every view works with.
type Job struct {
	ID          ID
	Title       string
	Location    string
	Company     string
	Type        string
	Experience  string
	Description string
	Status      string
	SalaryMin   *float64
	SalaryMax   *float64
	SalaryText  string
}

// Normalize folds both wire shapes into a Job. Backend fields win over the
// legacy ones.
func (r RawJob) Normalize() Job {
	return Job{
		ID:          r.ID,
		Title:       r.Title,
		Location:    r.Location,
		Company:     r.Company,
		Type:        firstNonEmpty(r.JobType, r.Type, DefaultJobType),
		Experience:  firstNonEmpty(r.TotalExperience, r.Exp, DefaultExperience),
		Description: firstNonEmpty(r.Description, r.Desc),
		Status:      r.Status,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
		SalaryText:  r.Salary,
	}
}

// NormalizeJobs normalizes a fetched batch.
func NormalizeJobs(raw []RawJob) []Job {
	jobs := make([]Job, 0, len(raw))
	for _, r := range raw {
		jobs = append(jobs, r.Normalize())
	}
	return jobs
}

// SalaryLabel renders the salary range as "₹a - ₹b". When the backend sends
// no range the legacy free-text salary is used.
func (j Job) SalaryLabel() string {
	if j.SalaryMin == nil && j.SalaryMax == nil {
		return j.SalaryText
	}
	var a, b string
	if j.SalaryMin != nil {
		a = "₹" + FormatINR(*j.SalaryMin)
	}
	if j.SalaryMax != nil {
		b = "₹" + FormatINR(*j.SalaryMax)
	}
	if a != "" && b != "" {
		return a + " - " + b
	}
	return a + b
}

// searchText is the haystack used by the free-text filter.
func (j Job) searchText() string {
	return strings.ToLower(j.Title + " " + j.Location + " " + j.Description)
}

// FormatINR formats n with Indian digit grouping (12,34,567) and at most
// three fraction digits.
func FormatINR(n float64) string {
	s := strconv.FormatFloat(math.Round(n*1000)/1000, 'f', -1, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}
	if hasFrac {
		return sign + grouped + "." + frac
	}
	return sign + grouped
}

// JobFilter is the board's filter state. Empty Type/Experience mean "All".
type JobFilter struct {
	Query      string
	Type       string
	Experience string
}

// Match reports whether j passes every filter.
func (f JobFilter) Match(j Job) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !strings.Contains(j.searchText(), q) {
		return false
	}
	if f.Type != "" && f.Type != FilterAll && j.Type != f.Type {
		return false
	}
	if f.Experience != "" && f.Experience != FilterAll && j.Experience != f.Experience {
		return false
	}
	return true
}

// FilterJobs returns the jobs that match f, preserving order. It never
// mutates jobs.
func FilterJobs(jobs []Job, f JobFilter) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

// ExperienceOptions returns "All" followed by the distinct experience values
// present in jobs, in first-seen order.
func ExperienceOptions(jobs []Job) []string {
	opts := []string{FilterAll}
	seen := map[string]bool{FilterAll: true}
	for _, j := range jobs {
		if !seen[j.Experience] {
			seen[j.Experience] = true
			opts = append(opts, j.Experience)
		}
	}
	return opts
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

package domain

import (
	"encoding/json"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestRawJobNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawJob
		wantType string
		wantExp  string
		wantDesc string
	}{
		{"backend shape", RawJob{JobType: "Office", TotalExperience: "2-4 yrs", Description: "backend"}, "Office", "2-4 yrs", "backend"},
		{"legacy shape", RawJob{Type: "WFH", Exp: "Fresher", Desc: "mock"}, "WFH", "Fresher", "mock"},
		{"backend wins", RawJob{JobType: "Office", Type: "WFH", Description: "a", Desc: "b"}, "Office", "All", "a"},
		{"defaults", RawJob{}, "WFH", "All", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := tt.raw.Normalize()
			if j.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", j.Type, tt.wantType)
			}
			if j.Experience != tt.wantExp {
				t.Errorf("Experience = %q, want %q", j.Experience, tt.wantExp)
			}
			if j.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", j.Description, tt.wantDesc)
			}
		})
	}
}

func TestRawJobDecodesNumericAndStringIDs(t *testing.T) {
	var raw []RawJob
	data := `[{"id": 7, "title": "Engineer"}, {"id": "abc", "title": "Nurse"}, {"id": null}]`
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if raw[0].ID != "7" || raw[1].ID != "abc" || raw[2].ID != "" {
		t.Errorf("ids = %q %q %q, want 7 abc \"\"", raw[0].ID, raw[1].ID, raw[2].ID)
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{2500, "2,500"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{150000.5, "1,50,000.5"},
		{-25000, "-25,000"},
	}
	for _, tt := range tests {
		if got := FormatINR(tt.in); got != tt.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSalaryLabel(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want string
	}{
		{"range", Job{SalaryMin: ptr(100000), SalaryMax: ptr(250000)}, "₹1,00,000 - ₹2,50,000"},
		{"min only", Job{SalaryMin: ptr(30000)}, "₹30,000"},
		{"max only", Job{SalaryMax: ptr(45000)}, "₹45,000"},
		{"legacy text", Job{SalaryText: "3-5 LPA"}, "3-5 LPA"},
		{"range beats legacy", Job{SalaryMin: ptr(1000), SalaryText: "ignored"}, "₹1,000"},
		{"nothing", Job{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.SalaryLabel(); got != tt.want {
				t.Errorf("SalaryLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterJobs(t *testing.T) {
	jobs := NormalizeJobs([]RawJob{
		{ID: "1", Title: "Engineer", Location: "Pune"},
		{ID: "2", Title: "Nurse", Location: "Delhi", JobType: "Office"},
		{ID: "3", Title: "Recruiter", Location: "Mumbai", Desc: "Hiring across PUNE and Delhi", Exp: "Fresher"},
	})

	tests := []struct {
		name   string
		filter JobFilter
		want   []ID
	}{
		{"no filter", JobFilter{}, []ID{"1", "2", "3"}},
		{"query pune is case-insensitive over description", JobFilter{Query: "pune"}, []ID{"1", "3"}},
		{"query trims spaces", JobFilter{Query: "  nurse "}, []ID{"2"}},
		{"type WFH", JobFilter{Type: "WFH"}, []ID{"1", "3"}},
		{"type Office", JobFilter{Type: "Office"}, []ID{"2"}},
		{"type All", JobFilter{Type: "All"}, []ID{"1", "2", "3"}},
		{"experience", JobFilter{Experience: "Fresher"}, []ID{"3"}},
		{"combined", JobFilter{Query: "delhi", Type: "WFH"}, []ID{"3"}},
		{"nothing matches", JobFilter{Query: "chennai"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterJobs(jobs, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d jobs, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterJobsPuneQueryAndWFHType(t *testing.T) {
	jobs := NormalizeJobs([]RawJob{
		{Title: "Engineer", Location: "Pune"},
		{Title: "Nurse", Location: "Delhi"},
	})
	got := FilterJobs(jobs, JobFilter{Query: "pune"})
	if len(got) != 1 || got[0].Title != "Engineer" {
		t.Errorf("query pune = %+v, want only Engineer", got)
	}
}

func TestExperienceOptions(t *testing.T) {
	jobs := []Job{{Experience: "All"}, {Experience: "Fresher"}, {Experience: "2 yrs"}, {Experience: "Fresher"}}
	got := ExperienceOptions(jobs)
	want := []string{"All", "Fresher", "2 yrs"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

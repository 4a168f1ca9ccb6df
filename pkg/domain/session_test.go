package domain

import "testing"

func TestSessionAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{"empty", Session{}, false},
		{"token only", Session{Token: "t"}, false},
		{"user only", Session{User: &AuthUser{Name: "A"}}, false},
		{"both", Session{Token: "t", User: &AuthUser{Name: "A"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Authenticated(); got != tt.want {
				t.Errorf("Authenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleDashboardPath(t *testing.T) {
	if got := RoleEmployer.DashboardPath(); got != "/employer" {
		t.Errorf("employer path = %q", got)
	}
	if got := RoleCandidate.DashboardPath(); got != "/candidate" {
		t.Errorf("candidate path = %q", got)
	}
	if got := Role("").DashboardPath(); got != "/candidate" {
		t.Errorf("empty role path = %q", got)
	}
}

func TestDashSummaryFallbacks(t *testing.T) {
	three, five := 3, 5
	d := DashSummary{Today: DashToday{NewUsers: &three}}
	if got := d.TodayCustomers(); got != 3 {
		t.Errorf("TodayCustomers() = %d, want 3 from new_users", got)
	}
	d.Today.NewCustomers = &five
	if got := d.TodayCustomers(); got != 5 {
		t.Errorf("TodayCustomers() = %d, want 5 from new_customers", got)
	}
	if got := (DashSummary{}).TodayCustomers(); got != 0 {
		t.Errorf("TodayCustomers() = %d, want 0", got)
	}
	if got := d.ActiveJobsLabel(); got != "-" {
		t.Errorf("ActiveJobsLabel() = %q, want -", got)
	}
	d.Totals.ActiveJobs = &three
	if got := d.ActiveJobsLabel(); got != "3" {
		t.Errorf("ActiveJobsLabel() = %q, want 3", got)
	}
}

func TestServiceBySlug(t *testing.T) {
	if s, ok := ServiceBySlug("payroll"); !ok || s.Title != "Payroll Services" {
		t.Errorf("ServiceBySlug(payroll) = %+v, %v", s, ok)
	}
	if _, ok := ServiceBySlug("nope"); ok {
		t.Error("ServiceBySlug(nope) found a service")
	}
	if got := len(MenuServices()); got != 6 {
		t.Errorf("len(MenuServices()) = %d, want 6", got)
	}
}

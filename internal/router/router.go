// Package router maps terminal "URLs" onto pages.
//
// Routes form two disjoint subtrees. The admin subtree sits behind a Guard
// and renders inside the admin layout; the public subtree renders with the
// navbar and footer. /admin/login belongs to neither and renders bare.
package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/nemesisgroup/jobportal/pkg/domain"
)

// Page identifies the view a route renders.
type Page string

const (
	PageHome              Page = "home"
	PageJobs              Page = "jobs"
	PageJobDetail         Page = "job-detail"
	PageAuth              Page = "auth"
	PageContact           Page = "contact"
	PageTerms             Page = "terms"
	PagePrivacy           Page = "privacy"
	PageAbout             Page = "about"
	PageServices          Page = "services"
	PageService           Page = "service"
	PageCandidateHome     Page = "candidate"
	PageCandidateProfile  Page = "candidate-profile"
	PageCandidateApps     Page = "candidate-applications"
	PageEmployer          Page = "employer"
	PageNemesis           Page = "nemesis"
	PageForgotPassword    Page = "forgot-password"
	PageAdminLogin        Page = "admin-login"
	PageAdminDashboard    Page = "admin-dashboard"
	PageAdminCustomers    Page = "admin-customers"
	PageAdminEmployees    Page = "admin-employees"
	PageAdminJobs         Page = "admin-jobs"
	PageAdminApplications Page = "admin-applications"
)

// Layout is the chrome a page is rendered in.
type Layout int

const (
	LayoutPublic Layout = iota // navbar + footer
	LayoutAdmin                // admin sidebar
	LayoutBare                 // nothing around the page
)

func (l Layout) String() string {
	switch l {
	case LayoutAdmin:
		return "admin"
	case LayoutBare:
		return "bare"
	default:
		return "public"
	}
}

// Well-known paths.
const (
	PathHome           = "/"
	PathAuth           = "/auth"
	PathJobs           = "/jobs"
	PathAdmin          = "/admin"
	PathAdminLogin     = "/admin/login"
	PathAdminDashboard = "/admin/dashboard"
)

// Guard authorizes the admin subtree. The router treats it as opaque.
type Guard interface {
	Allow(ctx context.Context) bool
}

// GuardFunc adapts a function to Guard.
type GuardFunc func(ctx context.Context) bool

func (f GuardFunc) Allow(ctx context.Context) bool { return f(ctx) }

// Match is the outcome of resolving a path.
type Match struct {
	Path           string
	Page           Page
	Layout         Layout
	Params         map[string]string
	RedirectedFrom string
}

// Param returns a path parameter or "".
func (m Match) Param(name string) string { return m.Params[name] }

type route struct {
	pattern  []string
	page     Page
	redirect string
	params   map[string]string // fixed params of a static route
}

// maxHops bounds redirect chains.
const maxHops = 4

// Router resolves paths against the route table.
type Router struct {
	guard  Guard
	admin  []route
	public []route
}

// New returns a Router. A nil guard rejects every admin page.
func New(guard Guard) *Router {
	if guard == nil {
		guard = GuardFunc(func(context.Context) bool { return false })
	}
	r := &Router{
		guard: guard,
		admin: []route{
			{pattern: split(PathAdmin), redirect: PathAdminDashboard},
			{pattern: split("/admin/dashboard"), page: PageAdminDashboard},
			{pattern: split("/admin/customers"), page: PageAdminCustomers},
			{pattern: split("/admin/employees"), page: PageAdminEmployees},
			{pattern: split("/admin/jobs"), page: PageAdminJobs},
			{pattern: split("/admin/applications"), page: PageAdminApplications},
		},
		public: []route{
			{pattern: split("/"), page: PageHome},
			{pattern: split("/jobs"), page: PageJobs},
			{pattern: split("/jobs/:id"), page: PageJobDetail},
			{pattern: split("/auth"), page: PageAuth},
			{pattern: split("/contact"), page: PageContact},
			{pattern: split("/terms"), page: PageTerms},
			{pattern: split("/privacy"), page: PagePrivacy},
			{pattern: split("/about"), page: PageAbout},
			{pattern: split("/services"), page: PageServices},
			{pattern: split("/candidate"), page: PageCandidateHome},
			{pattern: split("/candidate/profile"), page: PageCandidateProfile},
			{pattern: split("/candidate/applications"), page: PageCandidateApps},
			{pattern: split("/employer"), page: PageEmployer},
			{pattern: split("/nemesis"), page: PageNemesis},
			{pattern: split("/services/:slug"), page: PageService},
			{pattern: split("/forgot-password"), page: PageForgotPassword},
		},
	}
	for _, svc := range domain.Services {
		r.public = append(r.public, route{
			pattern: split(ServicePath(svc.Slug)),
			page:    PageService,
			params:  map[string]string{"slug": svc.Slug},
		})
	}
	return r
}

// Resolve normalizes path, applies redirects and the admin guard, and
// returns the page to render. It always returns a renderable match.
func (r *Router) Resolve(ctx context.Context, path string) Match {
	requested := Normalize(path)
	current := requested

	for hop := 0; hop <= maxHops; hop++ {
		next, m := r.step(ctx, current)
		if next == "" {
			if current != requested {
				m.RedirectedFrom = requested
			}
			return m
		}
		current = next
	}
	return Match{Path: PathHome, Page: PageHome, Layout: LayoutPublic, RedirectedFrom: requested}
}

// step resolves one path, returning either a redirect target or a match.
func (r *Router) step(ctx context.Context, path string) (string, Match) {
	if path == PathAdminLogin {
		return "", Match{Path: path, Page: PageAdminLogin, Layout: LayoutBare}
	}

	segs := split(path)
	if rt, params, ok := lookup(r.admin, segs); ok {
		if !r.guard.Allow(ctx) {
			return PathAdminLogin, Match{}
		}
		if rt.redirect != "" {
			return rt.redirect, Match{}
		}
		return "", Match{Path: path, Page: rt.page, Layout: LayoutAdmin, Params: params}
	}

	if rt, params, ok := lookup(r.public, segs); ok {
		if rt.redirect != "" {
			return rt.redirect, Match{}
		}
		return "", Match{Path: path, Page: rt.page, Layout: LayoutPublic, Params: params}
	}
	return PathHome, Match{}
}

// lookup returns the matching route with the most static segments, so
// /services/payroll is preferred over /services/:slug.
func lookup(routes []route, segs []string) (route, map[string]string, bool) {
	var (
		best       route
		bestParams map[string]string
		bestStatic = -1
	)
	for _, rt := range routes {
		params, static, ok := match(rt.pattern, segs)
		if ok && static > bestStatic {
			best, bestParams, bestStatic = rt, params, static
		}
	}
	if bestStatic >= 0 && len(best.params) > 0 {
		if bestParams == nil {
			bestParams = make(map[string]string, len(best.params))
		}
		for k, v := range best.params {
			bestParams[k] = v
		}
	}
	return best, bestParams, bestStatic >= 0
}

// match compares pattern with the escaped path segments. Static segments
// and params are compared and captured in unescaped form.
func match(pattern, segs []string) (map[string]string, int, bool) {
	if len(pattern) != len(segs) {
		return nil, 0, false
	}
	var params map[string]string
	static := 0
	for i, p := range pattern {
		seg := unescape(segs[i])
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = seg
			continue
		}
		if p != seg {
			return nil, 0, false
		}
		static++
	}
	return params, static, true
}

func unescape(seg string) string {
	if u, err := url.PathUnescape(seg); err == nil {
		return u
	}
	return seg
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Normalize strips query and fragment, collapses duplicate slashes,
// removes a trailing slash and guarantees a leading one. Each segment is
// put in canonical escaped form, so an escaped "/" inside a segment
// stays part of that segment.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := split(path)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, url.PathEscape(unescape(p)))
		}
	}
	return "/" + strings.Join(out, "/")
}

// ServicePath returns the detail path for a service slug.
func ServicePath(slug string) string { return "/services/" + slug }

// JobPath returns the detail path for a job id.
func JobPath(id string) string { return "/jobs/" + url.PathEscape(id) }

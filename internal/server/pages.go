package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/campusworks/careerdeck/internal/session"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head><title>careerdeck - {{.Title}}</title></head>
<body>
<header>
  <strong>Career Services</strong> | {{.UserName}} ({{.Role}})
  <a href="/logout">Sign out</a>
</header>
{{if .Toast}}<div class="toast toast-{{.Toast.Kind}}">{{.Toast.Message}}</div>{{end}}
<main>
<h1>{{.Title}}</h1>
<pre>{{.Body}}</pre>
</main>
</body>
</html>
`))

type pageData struct {
	Title    string
	UserName string
	Role     string
	Toast    *toastData
	Body     string
}

type toastData struct {
	Kind    string
	Message string
}

// renderPage serves an allowed in-subtree page. Data fetch failures are
// rendered inline; the gateway has already published any cross-cutting
// notification by the time the error reaches us.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, snap session.Snapshot) {
	title, data, err := s.pageContent(r)
	if err != nil {
		data = map[string]string{"error": err.Error()}
	}

	body, merr := json.MarshalIndent(data, "", "  ")
	if merr != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:    title,
		UserName: snap.User.FullName(),
		Role:     snap.User.Role,
		Body:     string(body),
	}
	if current := s.bus.Current(); current != nil {
		pd.Toast = &toastData{Kind: string(current.Kind), Message: current.Message}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pd); err != nil {
		log.Error().Err(err).Msg("failed to render page")
	}
}

// pageContent fetches the data backing one dashboard page.
func (s *Server) pageContent(r *http.Request) (string, any, error) {
	ctx := r.Context()
	path := strings.Trim(r.URL.Path, "/")
	subtree, page, _ := strings.Cut(path, "/")

	switch subtree + "/" + page {
	case "student/overview":
		summary, err := s.api.StudentSummary(ctx)
		return "Student Overview", summary, err
	case "student/jobs":
		jobs, err := s.api.StudentJobs(ctx)
		return "Job Board", jobs, err
	case "student/applications":
		apps, err := s.api.MyApplications(ctx)
		return "My Applications", apps, err
	case "student/learning":
		modules, err := s.api.LearningModules(ctx)
		return "Applied Learning", modules, err
	case "student/profile":
		profile, err := s.api.StudentProfile(ctx)
		return "My Profile", profile, err

	case "employer/overview":
		summary, err := s.api.EmployerSummary(ctx)
		return "Employer Overview", summary, err
	case "employer/postings":
		jobs, err := s.api.EmployerPostings(ctx)
		return "My Postings", jobs, err
	case "employer/applicants":
		summary, err := s.api.EmployerSummary(ctx)
		return "Applicant Pool", summary, err
	case "employer/interviews":
		interviews, err := s.api.EmployerInterviews(ctx)
		return "Interviews", interviews, err

	case "admin/overview":
		stats, err := s.api.AdminStats(ctx)
		return "Command Center", stats, err
	case "admin/users":
		users, err := s.api.AdminUsers(ctx)
		return "User Management", users, err
	case "admin/jobs":
		jobs, err := s.api.AdminJobs(ctx)
		return "Job Oversight", jobs, err
	case "admin/learning":
		modules, err := s.api.LearningModules(ctx)
		return "Applied Learning", modules, err
	case "admin/settings":
		cfg, err := s.api.SystemConfig(ctx)
		return "System Settings", cfg, err
	}

	return "Not Found", nil, fmt.Errorf("no content for %s", r.URL.Path)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `<!doctype html>
<html>
<body>
<p>Current Path: %s</p>
<p>404: Page Not Found or Unauthorized</p>
</body>
</html>
`, template.HTMLEscapeString(r.URL.Path))
}

// Package api is the typed client for the career-services backend. All
// calls go through the request gateway, which owns credential injection
// and failure notifications; this layer only knows paths and shapes.
package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/campusworks/careerdeck/internal/gateway"
)

// DefaultBasePath is the backend mount point for the platform API.
const DefaultBasePath = "/learningsystem/api"

// Client issues typed calls against the backend REST surface.
type Client struct {
	gw *gateway.Client
}

func New(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// CurrentUser resolves the caller's application user record. This is the
// "who am I" exchange the identity bootstrap runs at startup.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.gw.Get(ctx, "/users/", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return &user, nil
}

// CurrentUserWithToken is CurrentUser with an explicit bearer, used
// before the token has been persisted to the credential store.
func (c *Client) CurrentUserWithToken(ctx context.Context, token string) (*User, error) {
	return c.CurrentUser(gateway.WithBearer(ctx, token))
}

// Student surface

func (c *Client) StudentSummary(ctx context.Context) (*StudentSummary, error) {
	var summary StudentSummary
	if err := c.gw.Get(ctx, "/student/dashboard/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) StudentProfile(ctx context.Context) (*StudentProfile, error) {
	var profile StudentProfile
	if err := c.gw.Get(ctx, "/student/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateStudentProfile(ctx context.Context, profile *StudentProfile) error {
	return c.gw.Patch(ctx, "/student/profile", profile, nil)
}

func (c *Client) StudentJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.gw.Get(ctx, "/jobs/student-view", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) MyApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.gw.Get(ctx, "/applications/my-applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) SubmitApplication(ctx context.Context, app *NewApplication) (*Application, error) {
	var created Application
	if err := c.gw.Post(ctx, "/applications", app, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) WithdrawApplication(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/applications/"+url.PathEscape(id)+"/withdraw")
}

func (c *Client) LearningModules(ctx context.Context) ([]LearningModule, error) {
	var modules []LearningModule
	if err := c.gw.Get(ctx, "/learning/modules", &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *Client) CompleteLearningModule(ctx context.Context, id string) error {
	return c.gw.Post(ctx, "/learning/modules/"+url.PathEscape(id)+"/complete", nil, nil)
}

// Employer surface

func (c *Client) EmployerSummary(ctx context.Context) (*EmployerSummary, error) {
	var summary EmployerSummary
	if err := c.gw.Get(ctx, "/employer/dashboard/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) EmployerPostings(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.gw.Get(ctx, "/employer/dashboard/my-postings", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) CreatePosting(ctx context.Context, job *NewJob) (*Job, error) {
	var created Job
	if err := c.gw.Post(ctx, "/employer/dashboard/create", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) EmployerInterviews(ctx context.Context) ([]Interview, error) {
	var interviews []Interview
	if err := c.gw.Get(ctx, "/employer/dashboard/interviews", &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

func (c *Client) SetApplicantStatus(ctx context.Context, applicationID, status string) error {
	path := fmt.Sprintf("/employer/dashboard/applicants/%s/status?newStatus=%s",
		url.PathEscape(applicationID), url.QueryEscape(status))
	return c.gw.Patch(ctx, path, nil, nil)
}

func (c *Client) RescheduleInterview(ctx context.Context, id string, r *Reschedule) error {
	return c.gw.Patch(ctx, "/employer/dashboard/interviews/"+url.PathEscape(id)+"/reschedule", r, nil)
}

// Admin surface (STAFF / FACULTY)

func (c *Client) AdminStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.gw.Get(ctx, "/admin/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.gw.Get(ctx, "/admin/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, user *NewUser) (*User, error) {
	var created User
	if err := c.gw.Post(ctx, "/admin/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, user *NewUser) error {
	return c.gw.Put(ctx, "/admin/users/"+url.PathEscape(id), user, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/admin/users/"+url.PathEscape(id))
}

// ExportUsers returns the admin user roster as CSV.
func (c *Client) ExportUsers(ctx context.Context) ([]byte, error) {
	return c.gw.GetRaw(ctx, "/admin/users/export")
}

func (c *Client) ValidateBannerID(ctx context.Context, bannerID string) (*BannerValidation, error) {
	var result BannerValidation
	if err := c.gw.Get(ctx, "/admin/users/validate-banner/"+url.PathEscape(bannerID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AuditLogs(ctx context.Context) ([]AuditLog, error) {
	var logs []AuditLog
	if err := c.gw.Get(ctx, "/admin/audit-logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ExportAuditLogs returns the audit trail as CSV.
func (c *Client) ExportAuditLogs(ctx context.Context) ([]byte, error) {
	return c.gw.GetRaw(ctx, "/admin/audit-logs/export")
}

func (c *Client) AdminJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.gw.Get(ctx, "/jobs/admin/all", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) SetJobStatus(ctx context.Context, id, status string) error {
	return c.gw.Put(ctx, "/jobs/"+url.PathEscape(id)+"/status", map[string]string{"status": status}, nil)
}

func (c *Client) SystemConfig(ctx context.Context) (*SystemConfig, error) {
	var cfg SystemConfig
	if err := c.gw.Get(ctx, "/admin/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) UpdateSystemConfig(ctx context.Context, cfg *SystemConfig) error {
	return c.gw.Put(ctx, "/admin/config", cfg, nil)
}

package api

import "time"

// User is the application-level user record returned by the backend.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	BannerID  string `json:"bannerId,omitempty"`
	OktaID    string `json:"oktaId,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Job is a posting visible on the job board.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	PostedAt    time.Time `json:"postedAt"`
	Deadline    time.Time `json:"deadline,omitzero"`
}

// Application is a student's application to a job posting.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle,omitempty"`
	StudentID   string    `json:"studentId,omitempty"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewApplication is the payload for submitting an application.
type NewApplication struct {
	JobID       string `json:"jobId"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

// LearningModule is an applied-learning experience entry.
type LearningModule struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// Interview is a scheduled interview slot on the employer side.
type Interview struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	Candidate     string    `json:"candidate,omitempty"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Location      string    `json:"location,omitempty"`
	Status        string    `json:"status"`
}

// Reschedule is the payload for moving an interview.
type Reschedule struct {
	ScheduledAt time.Time `json:"scheduledAt"`
	Reason      string    `json:"reason,omitempty"`
}

// AuditLog is a single audit trail entry from the admin console.
type AuditLog struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StudentSummary backs the student overview page.
type StudentSummary struct {
	OpenJobs            int `json:"openJobs"`
	ActiveApplications  int `json:"activeApplications"`
	CompletedModules    int `json:"completedModules"`
	UpcomingDeadlines   int `json:"upcomingDeadlines"`
	UnreadNotifications int `json:"unreadNotifications"`
}

// EmployerSummary backs the employer overview page.
type EmployerSummary struct {
	ActivePostings     int `json:"activePostings"`
	TotalApplicants    int `json:"totalApplicants"`
	PendingReviews     int `json:"pendingReviews"`
	UpcomingInterviews int `json:"upcomingInterviews"`
}

// DashboardStats backs the staff command center.
type DashboardStats struct {
	TotalUsers          int `json:"totalUsers"`
	ActiveJobs          int `json:"activeJobs"`
	PendingApprovals    int `json:"pendingApprovals"`
	ExperiencesRecorded int `json:"experiencesRecorded"`
}

// StudentProfile is the editable student career profile.
type StudentProfile struct {
	UserID    string   `json:"userId"`
	Major     string   `json:"major,omitempty"`
	GradYear  int      `json:"gradYear,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	ResumeURL string   `json:"resumeUrl,omitempty"`
}

// NewUser is the payload for creating a user from the admin console.
type NewUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	BannerID  string `json:"bannerId,omitempty"`
}

// NewJob is the payload for an employer creating a posting.
type NewJob struct {
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline,omitzero"`
}

// SystemConfig is the admin-editable platform configuration.
type SystemConfig struct {
	AcademicYear       string `json:"academicYear"`
	RegistrationOpen   bool   `json:"registrationOpen"`
	MaxApplications    int    `json:"maxApplications"`
	ApprovalsRequired  bool   `json:"approvalsRequired"`
	MaintenanceMessage string `json:"maintenanceMessage,omitempty"`
}

// BannerValidation is the result of validating a banner ID.
type BannerValidation struct {
	BannerID string `json:"bannerId"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
}

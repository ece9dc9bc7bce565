package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusworks/careerdeck/internal/api"
)

func user(role string) *api.User {
	return &api.User{ID: "u-1", Email: "u@campus.edu", Role: role}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"STUDENT", RoleStudent},
		{"student", RoleStudent},
		{" Employer ", RoleEmployer},
		{"STAFF", RoleStaff},
		{"FACULTY", RoleFaculty},
		{"", RoleUnknown},
		{"ALUMNI", RoleUnknown},
		{"admin", RoleUnknown},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseRole(tc.in), "ParseRole(%q)", tc.in)
	}
}

func TestResolve_Unauthenticated(t *testing.T) {
	t.Run("any path redirects to login", func(t *testing.T) {
		for _, path := range []string{"/", "/student/jobs", "/admin/users", "/nope"} {
			d := Resolve(nil, path)
			assert.Equal(t, DecisionRedirect, d.Kind, "path %s", path)
			assert.Equal(t, LoginPath, d.Location, "path %s", path)
		}
	})
}

func TestResolve_UnknownRole(t *testing.T) {
	t.Run("no subtree is reachable", func(t *testing.T) {
		for _, role := range []string{"", "ALUMNI", "SUPERVISOR"} {
			for _, path := range []string{"/", "/student/overview", "/admin/users"} {
				d := Resolve(user(role), path)
				assert.Equal(t, DecisionRedirect, d.Kind, "role %q path %s", role, path)
				assert.Equal(t, LoginPath, d.Location, "role %q path %s", role, path)
			}
		}
	})
}

func TestResolve_RootDispatch(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"STUDENT", "/student"},
		{"EMPLOYER", "/employer"},
		{"STAFF", "/admin"},
		{"FACULTY", "/admin"},
	}
	for _, tc := range tests {
		d := Resolve(user(tc.role), "/")
		assert.Equal(t, DecisionRedirect, d.Kind, "role %s", tc.role)
		assert.Equal(t, tc.want, d.Location, "role %s", tc.role)
	}
}

func TestResolve_NestedDefaults(t *testing.T) {
	t.Run("bare subtree root redirects to its default child", func(t *testing.T) {
		d := Resolve(user("STAFF"), "/admin")
		assert.Equal(t, DecisionRedirect, d.Kind)
		assert.Equal(t, "/admin/overview", d.Location)

		d = Resolve(user("STUDENT"), "/student/")
		assert.Equal(t, DecisionRedirect, d.Kind)
		assert.Equal(t, "/student/overview", d.Location)

		d = Resolve(user("EMPLOYER"), "/employer")
		assert.Equal(t, DecisionRedirect, d.Kind)
		assert.Equal(t, "/employer/overview", d.Location)
	})
}

func TestResolve_SubtreeGating(t *testing.T) {
	t.Run("own subtree pages are allowed", func(t *testing.T) {
		for _, page := range []string{"overview", "jobs", "applications", "learning", "profile"} {
			d := Resolve(user("STUDENT"), "/student/"+page)
			assert.Equal(t, DecisionAllow, d.Kind, "page %s", page)
		}
	})

	t.Run("student requesting the admin subtree gets the fallback", func(t *testing.T) {
		for _, path := range []string{"/admin", "/admin/overview", "/admin/users", "/admin/settings"} {
			d := Resolve(user("STUDENT"), path)
			assert.Equal(t, DecisionNotFound, d.Kind, "path %s", path)
		}
	})

	t.Run("employer cannot reach student or admin routes", func(t *testing.T) {
		assert.Equal(t, DecisionNotFound, Resolve(user("EMPLOYER"), "/student/jobs").Kind)
		assert.Equal(t, DecisionNotFound, Resolve(user("EMPLOYER"), "/admin/users").Kind)
	})

	t.Run("faculty shares the staff console", func(t *testing.T) {
		for _, page := range []string{"overview", "users", "jobs", "learning", "settings"} {
			d := Resolve(user("FACULTY"), "/admin/"+page)
			assert.Equal(t, DecisionAllow, d.Kind, "page %s", page)
		}
	})

	t.Run("unrecognized pages inside the subtree 404", func(t *testing.T) {
		assert.Equal(t, DecisionNotFound, Resolve(user("STUDENT"), "/student/grades").Kind)
		assert.Equal(t, DecisionNotFound, Resolve(user("STAFF"), "/admin/payroll").Kind)
	})

	t.Run("unrelated paths 404", func(t *testing.T) {
		assert.Equal(t, DecisionNotFound, Resolve(user("STUDENT"), "/elsewhere").Kind)
	})
}

func TestDefaultLanding(t *testing.T) {
	assert.Equal(t, "/student", DefaultLanding(RoleStudent))
	assert.Equal(t, "/employer", DefaultLanding(RoleEmployer))
	assert.Equal(t, "/admin", DefaultLanding(RoleStaff))
	assert.Equal(t, "/admin", DefaultLanding(RoleFaculty))
	assert.Equal(t, LoginPath, DefaultLanding(RoleUnknown))
}

func TestSessionState(t *testing.T) {
	assert.Equal(t, StateUnresolved, SessionState(true, nil))
	assert.Equal(t, StateUnauthenticated, SessionState(false, nil))
	assert.Equal(t, StateAuthenticated, SessionState(false, user("STUDENT")))
}

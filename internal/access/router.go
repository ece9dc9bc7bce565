package access

import (
	"slices"
	"strings"

	"github.com/campusworks/careerdeck/internal/api"
)

// LoginPath is the application's login entry point; every unauthenticated
// or unknown-role request resolves here.
const LoginPath = "/login"

// Subtree is the set of routes permitted for a role.
type Subtree struct {
	Root    string
	Default string // default child, entered when the subtree root is requested bare
	Pages   []string
}

var (
	studentSubtree = Subtree{
		Root:    "/student",
		Default: "overview",
		Pages:   []string{"overview", "jobs", "applications", "learning", "profile"},
	}
	employerSubtree = Subtree{
		Root:    "/employer",
		Default: "overview",
		Pages:   []string{"overview", "postings", "applicants", "interviews"},
	}
	adminSubtree = Subtree{
		Root:    "/admin",
		Default: "overview",
		Pages:   []string{"overview", "users", "jobs", "learning", "settings"},
	}
)

// SubtreeFor returns the route subtree a role may enter. STAFF and
// FACULTY share the administrative console. The second return is false
// for RoleUnknown.
func SubtreeFor(role Role) (Subtree, bool) {
	switch role {
	case RoleStudent:
		return studentSubtree, true
	case RoleEmployer:
		return employerSubtree, true
	case RoleStaff, RoleFaculty:
		return adminSubtree, true
	case RoleUnknown:
		return Subtree{}, false
	}
	return Subtree{}, false
}

// DecisionKind classifies a routing outcome.
type DecisionKind int

const (
	// DecisionAllow renders the requested page.
	DecisionAllow DecisionKind = iota
	// DecisionRedirect sends the caller to Decision.Location.
	DecisionRedirect
	// DecisionNotFound renders the 404/unauthorized fallback. A path
	// outside the caller's subtree never falls through to another
	// role's subtree.
	DecisionNotFound
)

// Decision is the outcome of resolving one requested path.
type Decision struct {
	Kind     DecisionKind
	Location string // redirect target, set for DecisionRedirect
}

func redirect(to string) Decision {
	return Decision{Kind: DecisionRedirect, Location: to}
}

// DefaultLanding returns where a role lands when visiting the
// application root.
func DefaultLanding(role Role) string {
	st, ok := SubtreeFor(role)
	if !ok {
		return LoginPath
	}
	return st.Root
}

// Resolve gates one requested path against the current session. A nil
// user resolves to the login redirect regardless of path; an unknown
// role routes identically. Entering a subtree root bare redirects to its
// default child.
func Resolve(user *api.User, path string) Decision {
	if user == nil {
		return redirect(LoginPath)
	}

	role := ParseRole(user.Role)
	st, ok := SubtreeFor(role)
	if !ok {
		return redirect(LoginPath)
	}

	path = normalize(path)

	if path == "/" {
		return redirect(st.Root)
	}

	if path == st.Root {
		return redirect(st.Root + "/" + st.Default)
	}

	if page, found := strings.CutPrefix(path, st.Root+"/"); found {
		if slices.Contains(st.Pages, page) {
			return Decision{Kind: DecisionAllow}
		}
		return Decision{Kind: DecisionNotFound}
	}

	return Decision{Kind: DecisionNotFound}
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// State is the access router's view of the session lifecycle.
type State int

const (
	// StateUnresolved means the identity bootstrap has not settled yet.
	StateUnresolved State = iota
	// StateUnauthenticated means bootstrap settled with no user.
	StateUnauthenticated
	// StateAuthenticated means an application user with a concrete role
	// is present.
	StateAuthenticated
)

// SessionState classifies a session for routing. The machine cycles for
// the lifetime of the page session: logout or forced expiry returns an
// authenticated session to StateUnauthenticated.
func SessionState(loading bool, user *api.User) State {
	switch {
	case loading:
		return StateUnresolved
	case user == nil:
		return StateUnauthenticated
	default:
		return StateAuthenticated
	}
}

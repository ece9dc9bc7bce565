package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const bearerContextKey contextKey = "bearer"

// WithBearer returns a context carrying an explicit bearer token that
// overrides the credential store for requests made with it. The identity
// bootstrap uses this for the "who am I" exchange, which runs before the
// token has been persisted.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerContextKey, token)
}

func bearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerContextKey).(string)
	return token, ok && token != ""
}

// authTransport attaches the bearer credential and a request ID to every
// outbound call. A missing token is not an error at this layer; the
// backend is left to reject unauthenticated requests.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-Id", uuid.NewString())

	if token, ok := bearerFromContext(req.Context()); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if t.tokens != nil {
		if token, err := t.tokens.Read(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

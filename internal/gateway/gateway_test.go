package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/careerdeck/internal/notify"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Read() (string, error) {
	return s.token, s.err
}

type publishRecorder struct {
	mu        sync.Mutex
	published []notify.Notification
}

func (p *publishRecorder) Publish(message string, kind notify.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, notify.Notification{Message: message, Kind: kind})
}

func (p *publishRecorder) all() []notify.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Notification(nil), p.published...)
}

func TestClient_AuthHeader(t *testing.T) {
	t.Run("attaches bearer token when present", func(t *testing.T) {
		var gotAuth, gotRequestID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-Id")
			w.Write([]byte(`{}`)) //nolint:errcheck
		}))
		defer srv.Close()

		client, err := New(srv.URL, &staticTokens{token: "stored-token"}, &publishRecorder{})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, client.Get(context.Background(), "/users/", &out))
		assert.Equal(t, "Bearer stored-token", gotAuth)
		assert.NotEmpty(t, gotRequestID)
	})

	t.Run("absent token sends no header and is not an error", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`)) //nolint:errcheck
		}))
		defer srv.Close()

		client, err := New(srv.URL, &staticTokens{}, &publishRecorder{})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, client.Get(context.Background(), "/jobs/student-view", &out))
		assert.Empty(t, gotAuth)
	})

	t.Run("context bearer overrides the store", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`)) //nolint:errcheck
		}))
		defer srv.Close()

		client, err := New(srv.URL, &staticTokens{token: "stored-token"}, &publishRecorder{})
		require.NoError(t, err)

		ctx := WithBearer(context.Background(), "raw-id-token")
		var out map[string]any
		require.NoError(t, client.Get(ctx, "/users/", &out))
		assert.Equal(t, "Bearer raw-id-token", gotAuth)
	})
}

func TestClient_FailureNotifications(t *testing.T) {
	newStatusServer := func(code int) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(code), code)
		}))
	}

	t.Run("401 publishes session expired and still errors to the caller", func(t *testing.T) {
		srv := newStatusServer(http.StatusUnauthorized)
		defer srv.Close()

		recorder := &publishRecorder{}
		client, err := New(srv.URL, &staticTokens{}, recorder)
		require.NoError(t, err)

		err = client.Get(context.Background(), "/users/", nil)
		require.Error(t, err)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.Code)

		published := recorder.all()
		require.Len(t, published, 1)
		assert.Equal(t, MsgSessionExpired, published[0].Message)
		assert.Equal(t, notify.KindError, published[0].Kind)
	})

	t.Run("403 publishes access denied", func(t *testing.T) {
		srv := newStatusServer(http.StatusForbidden)
		defer srv.Close()

		recorder := &publishRecorder{}
		client, err := New(srv.URL, &staticTokens{}, recorder)
		require.NoError(t, err)

		require.Error(t, client.Get(context.Background(), "/admin/users/", nil))

		published := recorder.all()
		require.Len(t, published, 1)
		assert.Equal(t, MsgAccessDenied, published[0].Message)
	})

	t.Run("5xx publishes server unreachable", func(t *testing.T) {
		srv := newStatusServer(http.StatusBadGateway)
		defer srv.Close()

		recorder := &publishRecorder{}
		client, err := New(srv.URL, &staticTokens{}, recorder)
		require.NoError(t, err)

		require.Error(t, client.Get(context.Background(), "/admin/dashboard/stats", nil))

		published := recorder.all()
		require.Len(t, published, 1)
		assert.Equal(t, MsgServerError, published[0].Message)
	})

	t.Run("network failure publishes the distinct network variant", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // no response will ever be received

		recorder := &publishRecorder{}
		client, err := New(srv.URL, &staticTokens{}, recorder)
		require.NoError(t, err)

		err = client.Get(context.Background(), "/users/", nil)
		require.Error(t, err)

		var statusErr *StatusError
		assert.False(t, errors.As(err, &statusErr))

		published := recorder.all()
		require.Len(t, published, 1)
		assert.Equal(t, MsgNetworkError, published[0].Message)
	})

	t.Run("other 4xx stays silent but propagates", func(t *testing.T) {
		srv := newStatusServer(http.StatusConflict)
		defer srv.Close()

		recorder := &publishRecorder{}
		client, err := New(srv.URL, &staticTokens{}, recorder)
		require.NoError(t, err)

		err = client.Post(context.Background(), "/applications", map[string]string{"jobId": "1"}, nil)
		require.Error(t, err)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusConflict, statusErr.Code)

		assert.Empty(t, recorder.all())
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries GETs on 5xx and notifies once after exhaustion", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			mu.Unlock()
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		recorder := &publishRecorder{}
		client, err := New(srv.URL, &staticTokens{}, recorder, WithRetry(3))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		require.Error(t, client.Get(ctx, "/jobs/student-view", nil))

		mu.Lock()
		assert.Equal(t, 3, calls)
		mu.Unlock()

		assert.Len(t, recorder.all(), 1)
	})

	t.Run("does not retry non-idempotent methods", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			mu.Unlock()
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client, err := New(srv.URL, &staticTokens{}, &publishRecorder{}, WithRetry(3))
		require.NoError(t, err)

		require.Error(t, client.Post(context.Background(), "/applications", nil, nil))

		mu.Lock()
		assert.Equal(t, 1, calls)
		mu.Unlock()
	})
}

func TestClient_GetRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,email\n1,a@campus.edu\n")) //nolint:errcheck
	}))
	defer srv.Close()

	client, err := New(srv.URL, &staticTokens{}, &publishRecorder{})
	require.NoError(t, err)

	body, err := client.GetRaw(context.Background(), "/admin/users/export")
	require.NoError(t, err)
	assert.Contains(t, string(body), "a@campus.edu")
}

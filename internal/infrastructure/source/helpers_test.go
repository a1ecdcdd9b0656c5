package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"go.uber.org/zap"
)

// stubFetcher records calls and replays a canned response
type stubFetcher struct {
	mu       sync.Mutex
	status   int
	body     string
	err      error
	urls     []string
	accepts  []string
	lastArgs url.Values
}

func (f *stubFetcher) Get(_ context.Context, rawURL string, params url.Values, accept string) (*domain.FetchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.urls = append(f.urls, rawURL)
	f.accepts = append(f.accepts, accept)
	f.lastArgs = params
	if f.err != nil {
		return nil, f.err
	}

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &domain.FetchResponse{StatusCode: status, Body: []byte(f.body), URL: rawURL}, nil
}

// newUpstream starts a test server and a real client pointed at it
func newUpstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *fetch.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, fetch.NewClient(fetch.Options{Timeout: 2 * time.Second}, zap.NewNop())
}

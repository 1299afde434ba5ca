// Package testserver starts the full HTTP stack over an in-memory SQLite
// database for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/session"
	"github.com/ganot/checkvault/internal/domain/template"
	"github.com/ganot/checkvault/internal/mcp"
	"github.com/ganot/checkvault/internal/sqlite"
	"github.com/ganot/checkvault/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	APIKeys  *sqlite.APIKeyRepository
	Projects *project.Service
	Sessions *session.Service
	Token    string
	Owner    string
}

// New starts a server with auth enabled and one API key for owner.
func New(t *testing.T, token, owner string, now func() time.Time) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	templates := template.NewRegistry()
	apiKeys := sqlite.NewAPIKeyRepository(db)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	projectSvc := project.NewService(sqlite.NewDocumentRepository(db), templates, activitySvc, nil)
	sessionSvc := session.NewService(nil)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  projectSvc,
			Sessions:  sessionSvc,
			Activity:  activitySvc,
			Templates: templates,
		},
		Resolver:      apiKeys,
		AuthEnabled:   true,
		TransportMode: "http",
		Now:           now,
	})
	require.NoError(t, err)

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)
	router := transport.NewServer(handler, transport.Deps{
		Projects: projectSvc,
		Sessions: sessionSvc,
		Now:      now,
	}, transport.AuthMiddleware(apiKeys))
	server := httptest.NewServer(router)

	require.NoError(t, apiKeys.Add(context.Background(), token, owner, "test key"))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		APIKeys:  apiKeys,
		Projects: projectSvc,
		Sessions: sessionSvc,
		Token:    token,
		Owner:    owner,
	}
}

// Connect opens an MCP client session to the server using the given token.
func (ts *TestServer) Connect(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "testserver-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: &bearerTransport{token: token}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

type bearerTransport struct {
	token string
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}

package mcp

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ganot/checkvault/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver map[string]string

func (s stubResolver) ResolveOwner(_ context.Context, token string) (string, error) {
	owner, ok := s[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return owner, nil
}

func toolRequest(header http.Header) *sdkmcp.CallToolRequest {
	return &sdkmcp.CallToolRequest{
		Params: &sdkmcp.CallToolParamsRaw{Name: "list_projects"},
		Extra:  &sdkmcp.RequestExtra{Header: header},
	}
}

// capture records the context the wrapped handler was called with.
func capture(seen *context.Context) sdkmcp.MethodHandler {
	return func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		*seen = ctx
		return &sdkmcp.CallToolResult{}, nil
	}
}

func TestAuthMiddleware(t *testing.T) {
	resolver := stubResolver{"good-token": "alice"}

	t.Run("valid token sets actor", func(t *testing.T) {
		var seen context.Context
		handler := authMiddleware(resolver)(capture(&seen))

		header := http.Header{}
		header.Set("Authorization", "Bearer good-token")
		_, err := handler(context.Background(), "tools/call", toolRequest(header))
		require.NoError(t, err)
		assert.Equal(t, "alice", activity.ActorFromContext(seen))
	})

	t.Run("missing token", func(t *testing.T) {
		var seen context.Context
		handler := authMiddleware(resolver)(capture(&seen))

		_, err := handler(context.Background(), "tools/call", toolRequest(http.Header{}))
		require.ErrorContains(t, err, "missing bearer token")
		assert.Nil(t, seen)
	})

	t.Run("missing headers", func(t *testing.T) {
		var seen context.Context
		handler := authMiddleware(resolver)(capture(&seen))

		_, err := handler(context.Background(), "tools/call", &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{}})
		require.ErrorContains(t, err, "missing headers")
	})

	t.Run("unknown token", func(t *testing.T) {
		var seen context.Context
		handler := authMiddleware(resolver)(capture(&seen))

		header := http.Header{}
		header.Set("Authorization", "Bearer other")
		_, err := handler(context.Background(), "tools/call", toolRequest(header))
		require.ErrorContains(t, err, "unauthorized")
		assert.Nil(t, seen)
	})

	t.Run("protocol methods skip auth", func(t *testing.T) {
		var seen context.Context
		handler := authMiddleware(resolver)(capture(&seen))

		_, err := handler(context.Background(), "ping", toolRequest(nil))
		require.NoError(t, err)
		assert.Equal(t, activity.DefaultActor, activity.ActorFromContext(seen))
	})
}

func TestNoAuthMiddleware(t *testing.T) {
	var seen context.Context
	handler := noAuthMiddleware("ops")(capture(&seen))

	_, err := handler(context.Background(), "tools/call", toolRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "ops", activity.ActorFromContext(seen))
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		var seen context.Context
		handler := sessionMiddleware()(capture(&seen))

		header := http.Header{}
		header.Set("Mcp-Session-Id", "sess-42")
		_, err := handler(context.Background(), "tools/call", toolRequest(header))
		require.NoError(t, err)
		assert.Equal(t, "sess-42", getSessionID(seen))
	})

	t.Run("meta", func(t *testing.T) {
		var seen context.Context
		handler := sessionMiddleware()(capture(&seen))

		req := toolRequest(nil)
		req.Params.Meta = sdkmcp.Meta{"session_id": "from-meta"}
		_, err := handler(context.Background(), "tools/call", req)
		require.NoError(t, err)
		assert.Equal(t, "from-meta", getSessionID(seen))
	})

	t.Run("falls back to local", func(t *testing.T) {
		var seen context.Context
		handler := sessionMiddleware()(capture(&seen))

		_, err := handler(context.Background(), "tools/call", toolRequest(nil))
		require.NoError(t, err)
		assert.Equal(t, localSession, getSessionID(seen))
	})
}

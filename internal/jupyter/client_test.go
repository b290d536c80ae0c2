package jupyter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "secret")
	require.NoError(t, err)
	return client, srv
}

func TestNewClientBadURL(t *testing.T) {
	for _, raw := range []string{"://missing-scheme", "not a url", "/just/a/path"} {
		_, err := NewClient(raw, "")
		require.Error(t, err, "URL %q should be rejected", raw)
		var ce *ConfigError
		assert.ErrorAs(t, err, &ce)
	}
}

func TestAPIVersion(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version": "2.3.1"}`))
	}))

	version, err := client.APIVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.3.1", version)
}

func TestAPIVersionServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.APIVersion(context.Background())
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Contains(t, re.Body, "boom")
}

func TestListKernels(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/kernels", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "k1", "name": "python3", "last_activity": "2024-05-01T10:00:00Z", "execution_state": "idle", "connections": 1},
			{"id": "k2", "name": "ir", "last_activity": "2024-05-01T11:30:00Z", "execution_state": "busy", "connections": 0}
		]`))
	}))

	kernels, err := client.ListKernels(context.Background())
	require.NoError(t, err)
	require.Len(t, kernels, 2)
	assert.Equal(t, "k1", kernels[0].ID)
	assert.Equal(t, "python3", kernels[0].Name)
	assert.Equal(t, "idle", kernels[0].ExecutionState)
	assert.Equal(t, 1, kernels[0].Connections)
	assert.Equal(t, "k2", kernels[1].ID)
	assert.Equal(t, 2024, kernels[1].LastActivity.Year())
}

func TestKernelByIDNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	info, found, err := client.KernelByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, info)
}

func TestKernelByIDServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
	}))

	_, _, err := client.KernelByID(context.Background(), "k1")
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusServiceUnavailable, re.Status)
}

func TestKernelByID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/kernels/k1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "k1", "name": "python3", "last_activity": "2024-05-01T10:00:00Z", "execution_state": "idle", "connections": 2}`))
	}))

	info, found, err := client.KernelByID(context.Background(), "k1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "k1", info.ID)
	assert.Equal(t, 2, info.Connections)
}

func TestCreateKernel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/kernels", r.URL.Path)
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "python3", req["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "abc", "name": "python3", "last_activity": "2024-05-01T10:00:00Z", "execution_state": "starting", "connections": 0}`))
	}))

	info, err := client.CreateKernel(context.Background(), "python3")
	require.NoError(t, err)
	assert.Equal(t, "abc", info.ID)
	assert.Equal(t, "starting", info.ExecutionState)
}

func TestCreateKernelRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such spec", http.StatusBadRequest)
	}))

	_, err := client.CreateKernel(context.Background(), "fortran77")
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadRequest, re.Status)
}

func TestKillKernel(t *testing.T) {
	var deleted string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.KillKernel(context.Background(), "abc"))
	assert.Equal(t, "/api/kernels/abc", deleted)
}

func TestKillKernelAlreadyDead(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.KillKernel(context.Background(), "abc")
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.Status)
}

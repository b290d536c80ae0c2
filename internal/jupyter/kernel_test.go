package jupyter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://host", "wss://host/api/kernels/abc/channels"},
		{"http://host", "ws://host/api/kernels/abc/channels"},
		{"https://host:8888/tree", "wss://host:8888/api/kernels/abc/channels"},
		{"http://127.0.0.1:8888", "ws://127.0.0.1:8888/api/kernels/abc/channels"},
	}
	for _, tt := range tests {
		base, err := url.Parse(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, channelURL(base, "abc"))
	}
}

// mockJupyter is a fake kernel-management server covering the create,
// channels, and delete endpoints used by a session's lifecycle.
type mockJupyter struct {
	mu          sync.Mutex
	channelAuth string
	channelPath string
	deletedPath string
}

func (m *mockJupyter) handler(t *testing.T) http.Handler {
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/kernels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "abc", "name": "python3", "last_activity": "2024-05-01T10:00:00Z", "execution_state": "starting", "connections": 0}`))
	})

	mux.HandleFunc("GET /api/kernels/abc/channels", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.channelAuth = r.Header.Get("Authorization")
		m.channelPath = r.URL.Path
		m.mu.Unlock()

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		// Echo frames back until the client hangs up.
		for {
			var msg map[string]interface{}
			if err := ws.ReadJSON(&msg); err != nil {
				return
			}
			if err := ws.WriteJSON(msg); err != nil {
				return
			}
		}
	})

	mux.HandleFunc("DELETE /api/kernels/abc", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.deletedPath = r.URL.Path
		m.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func TestStartKernel(t *testing.T) {
	mock := &mockJupyter{}
	srv := httptest.NewServer(mock.handler(t))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret")
	require.NoError(t, err)

	kernel, err := StartKernel(context.Background(), client, "python3")
	require.NoError(t, err)
	defer kernel.Conn().Close()

	assert.Equal(t, "abc", kernel.ID())
	require.NotNil(t, kernel.Conn())

	mock.mu.Lock()
	assert.Equal(t, "token secret", mock.channelAuth)
	assert.Equal(t, "/api/kernels/abc/channels", mock.channelPath)
	mock.mu.Unlock()

	// The connection is live: a frame makes it to the server and back.
	require.NoError(t, kernel.Conn().Send(map[string]interface{}{"msg_type": "kernel_info_request"}))
	var echoed map[string]interface{}
	require.NoError(t, kernel.Conn().Recv(&echoed))
	assert.Equal(t, "kernel_info_request", echoed["msg_type"])

	require.NoError(t, kernel.Kill(context.Background()))
	mock.mu.Lock()
	assert.Equal(t, "/api/kernels/abc", mock.deletedPath)
	mock.mu.Unlock()
}

func TestStartKernelCreateFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret")
	require.NoError(t, err)

	_, err = StartKernel(context.Background(), client, "python3")
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.Status)
}

func TestStartKernelChannelDialFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/kernels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "abc", "name": "python3", "last_activity": "2024-05-01T10:00:00Z", "execution_state": "starting", "connections": 0}`))
	})
	mux.HandleFunc("GET /api/kernels/abc/channels", func(w http.ResponseWriter, r *http.Request) {
		// Refuse the upgrade.
		http.Error(w, "no channels for you", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret")
	require.NoError(t, err)

	_, err = StartKernel(context.Background(), client, "python3")
	require.Error(t, err)

	var ce *ConnectError
	require.ErrorAs(t, err, &ce)
}

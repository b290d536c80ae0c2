package jupyter

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection is a WebSocket channel to one kernel. It moves JSON frames in
// both directions; the messaging protocol on top is the caller's concern.
type Connection struct {
	ws *websocket.Conn

	// gorilla allows one concurrent writer only.
	writeMu sync.Mutex
}

// Dial opens a WebSocket connection to a kernel channels endpoint,
// presenting the same token header used for REST calls.
func Dial(ctx context.Context, rawURL, token string) (*Connection, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "token "+token)
	}

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, rawURL, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, &ConnectError{URL: rawURL, Err: err}
	}
	return &Connection{ws: ws}, nil
}

// Send writes one JSON frame. Safe for concurrent use.
func (c *Connection) Send(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(v)
}

// Recv reads the next JSON frame into v. Only one reader may call Recv at
// a time.
func (c *Connection) Recv(v interface{}) error {
	return c.ws.ReadJSON(v)
}

// Close closes the underlying WebSocket.
func (c *Connection) Close() error {
	return c.ws.Close()
}

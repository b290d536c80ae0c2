package jupyter

import (
	"context"
	"net/url"
	"strings"
)

// RemoteKernel is one running kernel owned by this process, paired with an
// open WebSocket connection to its channels endpoint.
type RemoteKernel struct {
	client *Client
	id     string
	conn   *Connection
}

// StartKernel starts a new kernel on the server and connects to it. The
// operation is all-or-nothing: the first failure aborts and is returned
// as-is. If the channel dial fails after the server has created the
// kernel, the server-side kernel is left running; callers can find it via
// ListKernels and kill it.
func StartKernel(ctx context.Context, client *Client, specName string) (*RemoteKernel, error) {
	info, err := client.CreateKernel(ctx, specName)
	if err != nil {
		return nil, err
	}

	conn, err := Dial(ctx, channelURL(client.serverURL, info.ID), client.token)
	if err != nil {
		return nil, err
	}

	return &RemoteKernel{
		client: client,
		id:     info.ID,
		conn:   conn,
	}, nil
}

// channelURL derives the WebSocket endpoint for a kernel from the REST
// base URL, mirroring its scheme: https becomes wss, http becomes ws.
func channelURL(base *url.URL, kernelID string) string {
	endpoint := base.ResolveReference(&url.URL{Path: "/api/kernels/" + kernelID + "/channels"})
	s := endpoint.String()
	if strings.HasPrefix(s, "https://") {
		return strings.Replace(s, "https://", "wss://", 1)
	}
	return strings.Replace(s, "http://", "ws://", 1)
}

// ID returns the server-assigned kernel id.
func (k *RemoteKernel) ID() string {
	return k.id
}

// Conn returns the kernel's channel connection. The handle is stable for
// the life of the session; execution drivers use it to exchange protocol
// messages.
func (k *RemoteKernel) Conn() *Connection {
	return k.conn
}

// Kill shuts down the kernel and deletes its id on the server. The channel
// connection is not closed here; it is torn down by the server or by the
// connection's own lifecycle.
func (k *RemoteKernel) Kill(ctx context.Context) error {
	return k.client.KillKernel(ctx, k.id)
}

package jupyter

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// connectTimeout bounds connection establishment, not whole requests, so a
// dead server fails fast while long-running calls still work.
const connectTimeout = 1 * time.Second

// Client is an HTTP client for a remote Jupyter server.
//
// It can make REST API requests and open new WebSocket connections. A
// Client is immutable after construction and safe for concurrent use;
// callers may share one freely.
type Client struct {
	serverURL *url.URL
	token     string
	http      *resty.Client
}

// NewClient returns a client for the given server without connecting.
// Every request carries an "Authorization: token <token>" header.
func NewClient(serverURL, token string) (*Client, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid server URL " + serverURL, Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &ConfigError{Reason: "server URL must be absolute: " + serverURL}
	}

	rc := resty.New().
		SetHeader("Authorization", "token "+token).
		SetTransport(&http.Transport{
			DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
		})

	return &Client{
		serverURL: parsed,
		token:     token,
		http:      rc,
	}, nil
}

// endpoint resolves an absolute API path against the server base URL.
func (c *Client) endpoint(path string) string {
	return c.serverURL.ResolveReference(&url.URL{Path: path}).String()
}

// KernelInfo is the server's view of one kernel at request time.
type KernelInfo struct {
	// ID uniquely identifies the kernel on the server.
	ID string `json:"id"`

	// Name of the kernel spec being run, e.g. "python3".
	Name string `json:"name"`

	// LastActivity is the last activity timestamp, typically UTC.
	LastActivity time.Time `json:"last_activity"`

	// ExecutionState of the kernel: "starting", "idle", "busy", etc.
	ExecutionState string `json:"execution_state"`

	// Connections is the number of active connections to the kernel.
	Connections int `json:"connections"`
}

// APIVersion returns the API version reported by the server.
func (c *Client) APIVersion(ctx context.Context) (string, error) {
	var body struct {
		Version string `json:"version"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get(c.endpoint("/api"))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", remoteError(resp)
	}
	return body.Version, nil
}

// ListKernels returns the active kernels, in whatever order the server
// reports them.
func (c *Client) ListKernels(ctx context.Context) ([]KernelInfo, error) {
	var kernels []KernelInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&kernels).
		Get(c.endpoint("/api/kernels"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}
	return kernels, nil
}

// KernelByID looks up a single kernel. A 404 from the server is reported
// as found=false rather than an error; any other non-2xx status is a
// RemoteError.
func (c *Client) KernelByID(ctx context.Context, kernelID string) (*KernelInfo, bool, error) {
	var info KernelInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&info).
		Get(c.endpoint("/api/kernels/" + kernelID))
	if err != nil {
		return nil, false, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.IsError() {
		return nil, false, remoteError(resp)
	}
	return &info, true, nil
}

// CreateKernel starts a new kernel from the named spec and returns the
// server-assigned kernel info.
func (c *Client) CreateKernel(ctx context.Context, specName string) (*KernelInfo, error) {
	var info KernelInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": specName}).
		SetResult(&info).
		Post(c.endpoint("/api/kernels"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}
	return &info, nil
}

// KillKernel shuts down a kernel and deletes its id on the server. Killing
// an already-dead kernel may fail; the server is not assumed idempotent.
func (c *Client) KillKernel(ctx context.Context, kernelID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.endpoint("/api/kernels/" + kernelID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return remoteError(resp)
	}
	return nil
}

func remoteError(resp *resty.Response) error {
	return &RemoteError{Status: resp.StatusCode(), Body: resp.String()}
}

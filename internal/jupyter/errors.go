package jupyter

import "fmt"

// ConfigError reports unusable client configuration, like a server URL
// that does not parse.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jupyter: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("jupyter: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RemoteError is a non-success HTTP status from the Jupyter server,
// carrying the status and response body for diagnostics.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("jupyter: server returned status %d: %s", e.Status, e.Body)
}

// ConnectError is a failure to establish the WebSocket channel to a
// kernel.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("jupyter: failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Package jupyter is a client for the Jupyter server kernel-management
// REST API and its per-kernel WebSocket channels.
//
// Client is stateless and cheaply shareable; it only carries the server
// base URL, the auth token, and an HTTP client. StartKernel composes the
// REST and WebSocket surfaces: it creates a kernel, derives the channel
// endpoint from the kernel id, and dials it, returning a RemoteKernel
// handle that owns the open connection.
//
// The Jupyter messaging protocol spoken over the channel is not
// implemented here; Connection only moves JSON frames.
package jupyter

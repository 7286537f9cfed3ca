package server

// Server is the lifecycle handle main holds on the running service.
//
// [RunServer] blocks until a stop signal arrives or the listener fails;
// [Shutdown] drains in-flight requests before releasing the listener.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server, letting in-flight requests finish.
	Shutdown()
}

package mock

import "net/http/httptest"

// HTTPTestServer runs the backend on an httptest server
type HTTPTestServer struct {
	*Backend
	Server *httptest.Server
	// URL is the API base URL including BasePath
	URL string
}

// NewHTTPTestServer starts a backend
func NewHTTPTestServer(opts ...Option) *HTTPTestServer {
	backend := New(opts...)
	server := httptest.NewServer(backend.Handler())
	return &HTTPTestServer{Backend: backend, Server: server, URL: server.URL + BasePath}
}

func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}

package server

import "net/http"

// handleHello answers GET and PUT /api/hello with a greeting naming the method.
func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Hello, world!",
		"method":  r.Method,
	})
}

// handleHelloName greets the name in the path.
func (s *Server) handleHelloName(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Hello, " + r.PathValue("name") + "!",
	})
}

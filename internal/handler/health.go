package handler

import "net/http"

// Ping handles GET /ping.
// It probes database connectivity and returns 200 {"db_alive": true} when the
// round-trip succeeds, or 503 when the database is unreachable.
func (s *Server) Ping(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "service_unavailable", "Database connection unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"db_alive": true})
}

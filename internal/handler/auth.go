package handler

import "net/http"

// registerRequest is the JSON body of POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// messageResponse is the generic success payload.
type messageResponse struct {
	Message string `json:"message"`
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.auth.Register(r.Context(), req.Email, req.Password); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User registered successfully"})
}

// Login handles POST /auth/login.
// Credentials arrive as an OAuth2-style password form: username (the email)
// and password, form-encoded.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed form body")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "username and password are required")
		return
	}

	info, err := s.auth.Login(r.Context(), email, password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avasiliev/cadastral-service/internal/cadastral"
	"github.com/avasiliev/cadastral-service/internal/domain"
)

// submitRequest is the JSON body of POST /query. Pointer fields distinguish
// "absent" from a legitimate zero coordinate.
type submitRequest struct {
	CadastralNumber *string  `json:"cadastral_number"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// submitResponse echoes the persisted projection. It deliberately omits
// id and created_at — only the history listing exposes those.
type submitResponse struct {
	CadastralNumber string  `json:"cadastral_number"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Result          *bool   `json:"result"`
}

// SubmitQuery handles POST /query.
// The cadastral number is normalized then validated, and coordinates are
// range-checked, before any side effect happens.
func (s *Server) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := requestToQuery(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}

	persisted, err := s.queries.Submit(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		CadastralNumber: persisted.CadastralNumber,
		Latitude:        persisted.Latitude,
		Longitude:       persisted.Longitude,
		Result:          persisted.Result,
	})
}

// GetHistory handles GET /history.
// Supports ?cadastral_number=, ?order_by= (asc|desc, default asc),
// ?limit= (1-100, default 10) and ?offset= (default 0).
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	f, err := historyFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		return
	}

	queries, err := s.queries.History(r.Context(), f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// An empty history serializes as [], not null.
	if queries == nil {
		queries = []domain.Query{}
	}
	writeJSON(w, http.StatusOK, queries)
}

// decodeJSON decodes the request body into v, writing the validation error
// response itself on failure. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed request body")
		return false
	}
	return true
}

// requestToQuery validates a submit request and converts it into a
// domain.Query. All failures wrap domain.ErrValidation.
func requestToQuery(req submitRequest) (domain.Query, error) {
	if req.CadastralNumber == nil || req.Latitude == nil || req.Longitude == nil {
		return domain.Query{}, fmt.Errorf("%w: cadastral_number, latitude and longitude are required", domain.ErrValidation)
	}

	number := cadastral.Normalize(*req.CadastralNumber)
	if !cadastral.IsValid(number) {
		return domain.Query{}, fmt.Errorf("%w: incorrect cadastral number format", domain.ErrValidation)
	}
	if *req.Latitude < -90 || *req.Latitude > 90 {
		return domain.Query{}, fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return domain.Query{}, fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}

	return domain.Query{
		CadastralNumber: number,
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
	}, nil
}

// historyFilterFromQuery parses and validates the history query parameters.
func historyFilterFromQuery(r *http.Request) (domain.HistoryFilter, error) {
	params := r.URL.Query()

	var cadastralNumber, orderBy *string
	if v := params.Get("cadastral_number"); v != "" {
		cadastralNumber = &v
	}
	if v := params.Get("order_by"); v != "" {
		orderBy = &v
	}

	limit, err := intParam(params.Get("limit"), "limit")
	if err != nil {
		return domain.HistoryFilter{}, err
	}
	offset, err := intParam(params.Get("offset"), "offset")
	if err != nil {
		return domain.HistoryFilter{}, err
	}

	return domain.NewHistoryFilter(cadastralNumber, orderBy, limit, offset)
}

// intParam parses an optional integer query parameter; absence returns nil.
func intParam(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return &n, nil
}

// Package service contains the business logic for the cadastral query
// service. Services orchestrate external calls and repo operations.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avasiliev/cadastral-service/internal/domain"
	"github.com/avasiliev/cadastral-service/internal/repo"
	"github.com/avasiliev/cadastral-service/internal/verifier"
)

// Verifier defines the single outbound call the query pipeline depends on.
// Implemented by *verifier.Client; mocked in tests.
type Verifier interface {
	Verify(ctx context.Context, cadastralNumber string, latitude, longitude float64) (bool, error)
}

// QueryService runs the submit pipeline and serves history reads.
type QueryService struct {
	queries  repo.QueryRepo
	verifier Verifier
}

// NewQueryService constructs a QueryService.
func NewQueryService(queries repo.QueryRepo, v Verifier) *QueryService {
	return &QueryService{queries: queries, verifier: v}
}

// Submit runs one verification attempt: call the external verifier, persist
// the outcome, return the persisted projection.
//
// When the verifier is unreachable the attempt is still persisted — with a
// NULL result — before verifier.ErrUnavailable is returned. The audit trail
// is not best-effort: if that insert fails, the insert failure wins and the
// request surfaces as a server error.
func (s *QueryService) Submit(ctx context.Context, q domain.Query) (domain.Query, error) {
	result, err := s.verifier.Verify(ctx, q.CadastralNumber, q.Latitude, q.Longitude)
	if err != nil {
		if errors.Is(err, verifier.ErrUnavailable) {
			q.Result = nil
			if recErr := s.queries.Record(ctx, q); recErr != nil {
				return domain.Query{}, fmt.Errorf("service.QueryService.Submit: record failed attempt: %w", recErr)
			}
			return domain.Query{}, err
		}
		return domain.Query{}, fmt.Errorf("service.QueryService.Submit: %w", err)
	}

	q.Result = &result
	persisted, err := s.queries.Insert(ctx, q)
	if err != nil {
		return domain.Query{}, fmt.Errorf("service.QueryService.Submit: %w", err)
	}
	return persisted, nil
}

// History returns persisted query attempts for an already validated filter.
func (s *QueryService) History(ctx context.Context, f domain.HistoryFilter) ([]domain.Query, error) {
	queries, err := s.queries.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.QueryService.History: %w", err)
	}
	return queries, nil
}

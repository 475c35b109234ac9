package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/cadastral-service/internal/domain"
	"github.com/avasiliev/cadastral-service/internal/handler"
	"github.com/avasiliev/cadastral-service/internal/service"
	"github.com/avasiliev/cadastral-service/internal/verifier"
)

// mockQueryServicer is a test double for handler.QueryServicer.
// Set only the method fields your test needs.
type mockQueryServicer struct {
	submit  func(ctx context.Context, q domain.Query) (domain.Query, error)
	history func(ctx context.Context, f domain.HistoryFilter) ([]domain.Query, error)
}

func (m *mockQueryServicer) Submit(ctx context.Context, q domain.Query) (domain.Query, error) {
	return m.submit(ctx, q)
}
func (m *mockQueryServicer) History(ctx context.Context, f domain.HistoryFilter) ([]domain.Query, error) {
	return m.history(ctx, f)
}

// compile-time check: mockQueryServicer must satisfy handler.QueryServicer.
var _ handler.QueryServicer = (*mockQueryServicer)(nil)

// mockAuthServicer is a test double for handler.AuthServicer.
type mockAuthServicer struct {
	register func(ctx context.Context, email, password string) error
	login    func(ctx context.Context, email, password string) (service.TokenInfo, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, email, password string) error {
	return m.register(ctx, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (service.TokenInfo, error) {
	return m.login(ctx, email, password)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// mockPinger is a test double for handler.Pinger.
type mockPinger struct {
	ping func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.ping(ctx) }

var _ handler.Pinger = (*mockPinger)(nil)

// ---- helpers ---------------------------------------------------------------

// passthroughAuth replaces the real bearer-token middleware so handler tests
// exercise the handlers alone. The middleware itself is tested in the
// middleware package.
func passthroughAuth(next http.Handler) http.Handler {
	return next
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(queries handler.QueryServicer, auth handler.AuthServicer, db handler.Pinger) http.Handler {
	return handler.NewServer(queries, auth, db).Routes(passthroughAuth)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func queryFixture() domain.Query {
	result := true
	return domain.Query{
		ID:              7,
		CadastralNumber: "77:01:0004012:2041",
		Latitude:        55.7558,
		Longitude:       37.6173,
		Result:          &result,
		CreatedAt:       time.Date(2025, 7, 19, 12, 0, 0, 0, time.UTC),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- POST /query -----------------------------------------------------------

func TestSubmitQuery_200(t *testing.T) {
	fixture := queryFixture()
	svc := &mockQueryServicer{
		submit: func(_ context.Context, q domain.Query) (domain.Query, error) {
			assert.Equal(t, fixture.CadastralNumber, q.CadastralNumber)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"cadastral_number": "77:01:0004012:2041",
		"latitude":         55.7558,
		"longitude":        37.6173,
	})
	req := httptest.NewRequest(http.MethodPost, "/query", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.CadastralNumber, resp["cadastral_number"])
	assert.Equal(t, true, resp["result"])
	// The submit response intentionally omits id and created_at.
	assert.NotContains(t, resp, "id")
	assert.NotContains(t, resp, "created_at")
}

func TestSubmitQuery_NormalizesBeforeSubmit(t *testing.T) {
	svc := &mockQueryServicer{
		submit: func(_ context.Context, q domain.Query) (domain.Query, error) {
			assert.Equal(t, "50:45:1234567:890", q.CadastralNumber)
			return q, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"cadastral_number": " 50 :  45 :  1234567  :   890 ",
		"latitude":         55.7558,
		"longitude":        37.6173,
	})
	req := httptest.NewRequest(http.MethodPost, "/query", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitQuery_503_VerifierUnavailable(t *testing.T) {
	svc := &mockQueryServicer{
		submit: func(_ context.Context, _ domain.Query) (domain.Query, error) {
			return domain.Query{}, fmt.Errorf("verifier.Client.Verify: %w", verifier.ErrUnavailable)
		},
	}

	body := jsonBody(t, map[string]any{
		"cadastral_number": "77:01:0004012:2041",
		"latitude":         55.7558,
		"longitude":        37.6173,
	})
	req := httptest.NewRequest(http.MethodPost, "/query", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "service_unavailable", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "temporarily unavailable")
}

func TestSubmitQuery_422_Validation(t *testing.T) {
	svc := &mockQueryServicer{
		submit: func(_ context.Context, _ domain.Query) (domain.Query, error) {
			t.Fatal("Submit must not be called for invalid input")
			return domain.Query{}, nil
		},
	}

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad cadastral number", map[string]any{"cadastral_number": "50:45:1234567", "latitude": 55.0, "longitude": 37.0}},
		{"latitude too high", map[string]any{"cadastral_number": "77:01:0004012:2041", "latitude": 90.5, "longitude": 37.0}},
		{"latitude too low", map[string]any{"cadastral_number": "77:01:0004012:2041", "latitude": -90.5, "longitude": 37.0}},
		{"longitude too high", map[string]any{"cadastral_number": "77:01:0004012:2041", "latitude": 55.0, "longitude": 180.5}},
		{"missing latitude", map[string]any{"cadastral_number": "77:01:0004012:2041", "longitude": 37.0}},
		{"missing cadastral number", map[string]any{"latitude": 55.0, "longitude": 37.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/query", jsonBody(t, tt.body))
			rec := httptest.NewRecorder()

			newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
		})
	}
}

func TestSubmitQuery_422_MalformedBody(t *testing.T) {
	svc := &mockQueryServicer{}

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSubmitQuery_500_StoreFailure(t *testing.T) {
	svc := &mockQueryServicer{
		submit: func(_ context.Context, _ domain.Query) (domain.Query, error) {
			return domain.Query{}, errors.New("connection pool exhausted")
		},
	}

	body := jsonBody(t, map[string]any{
		"cadastral_number": "77:01:0004012:2041",
		"latitude":         55.7558,
		"longitude":        37.6173,
	})
	req := httptest.NewRequest(http.MethodPost, "/query", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "pool", "infrastructure detail must not leak")
}

// ---- GET /history ----------------------------------------------------------

func TestGetHistory_200_Defaults(t *testing.T) {
	fixture := queryFixture()
	svc := &mockQueryServicer{
		history: func(_ context.Context, f domain.HistoryFilter) ([]domain.Query, error) {
			assert.Equal(t, domain.HistoryFilter{Order: domain.OrderAscending, Limit: 10}, f)
			return []domain.Query{fixture}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.EqualValues(t, 7, resp[0]["id"])
	assert.Contains(t, resp[0], "created_at")
	assert.Equal(t, fixture.CadastralNumber, resp[0]["cadastral_number"])
}

func TestGetHistory_200_AllParams(t *testing.T) {
	svc := &mockQueryServicer{
		history: func(_ context.Context, f domain.HistoryFilter) ([]domain.Query, error) {
			assert.Equal(t, domain.HistoryFilter{
				CadastralNumber: "77:01:0004012:2041",
				Order:           domain.OrderDescending,
				Limit:           50,
				Offset:          20,
			}, f)
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/history?cadastral_number=77:01:0004012:2041&order_by=desc&limit=50&offset=20", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String(), "empty history must serialize as an empty array")
}

func TestGetHistory_422_BadParams(t *testing.T) {
	svc := &mockQueryServicer{
		history: func(_ context.Context, _ domain.HistoryFilter) ([]domain.Query, error) {
			t.Fatal("History must not be called for invalid params")
			return nil, nil
		},
	}

	tests := []struct {
		name  string
		query string
	}{
		{"limit zero", "limit=0"},
		{"limit too high", "limit=101"},
		{"limit not a number", "limit=ten"},
		{"negative offset", "offset=-1"},
		{"bad order", "order_by=sideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/history?"+tt.query, nil)
			rec := httptest.NewRecorder()

			newHTTPHandler(svc, nil, nil).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
		})
	}
}

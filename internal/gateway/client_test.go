package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/metrics"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
}

// fakeGateway serves canned responses keyed by "METHOD path" and records every request.
type fakeGateway struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeGateway(t *testing.T, responses map[string]fakeResponse) (*fakeGateway, *httptest.Server) {
	fg := &fakeGateway{responses: responses}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fg.mu.Lock()
		fg.requests = append(fg.requests, recordedRequest{Method: r.Method, Path: r.URL.EscapedPath(), RawQuery: r.URL.RawQuery})
		fg.mu.Unlock()

		resp, ok := responses[r.Method+" "+r.URL.EscapedPath()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))
	t.Cleanup(srv.Close)
	return fg, srv
}

func (fg *fakeGateway) Requests() []recordedRequest {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	return append([]recordedRequest(nil), fg.requests...)
}

func TestClient_DashboardStats(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/dashboard/stats": {200, `{"total_stands":5,"active_stands":3,"total_earnings":120.50,"total_transactions":8,
			"recent_transactions":[{"transaction_type":"sale","player_name":"Alice","amount":20,"quantity":1},
			{"transaction_type":"purchase","player_name":"Bob","amount":"7.25","quantity":3,"item_name":"bread"}]}`},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalStands)
	assert.Equal(t, 3, stats.ActiveStands)
	assert.True(t, decimal.RequireFromString("120.5").Equal(stats.TotalEarnings))
	assert.Equal(t, 8, stats.TotalTransactions)
	require.Len(t, stats.RecentTransactions, 2)
	assert.Equal(t, "Alice", stats.RecentTransactions[0].PlayerName)
	assert.Equal(t, domain.TransactionTypeSale, stats.RecentTransactions[0].TransactionType)
	assert.Equal(t, "Bob", stats.RecentTransactions[1].PlayerName)
	assert.Equal(t, "bread", stats.RecentTransactions[1].ItemName)
	assert.True(t, decimal.RequireFromString("7.25").Equal(stats.RecentTransactions[1].Amount))
}

func TestClient_DashboardStats_NullTransactions(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/dashboard/stats": {200, `{"total_stands":0,"active_stands":0,"total_earnings":0,"total_transactions":0,"recent_transactions":null}`},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stats.RecentTransactions)
	assert.Empty(t, stats.RecentTransactions)
}

func TestClient_ListStands_PreservesOrder(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/market-stands": {200, `[
			{"id":"s2","name":"south","owner_name":"Eve","status":"expired","earnings":0,"total_sales":0},
			{"id":7,"name":"north market","owner_name":"Bob","status":"active","earnings":10,"total_sales":2}]`},
	})
	client := NewClient(srv.URL+"/api/", time.Second, nil)

	stands, err := client.ListStands(context.Background())
	require.NoError(t, err)
	require.Len(t, stands, 2)
	assert.Equal(t, domain.StandID("s2"), stands[0].ID)
	assert.Equal(t, domain.StandID("7"), stands[1].ID)
	assert.Equal(t, domain.StandStatusActive, stands[1].Status)
}

func TestClient_UpdateStandStatus(t *testing.T) {
	fg, srv := newFakeGateway(t, map[string]fakeResponse{
		"PUT /api/market-stands/s1/status": {200, ``},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	err := client.UpdateStandStatus(context.Background(), "s1", domain.StandStatusSuspended)
	require.NoError(t, err)

	reqs := fg.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, recordedRequest{Method: "PUT", Path: "/api/market-stands/s1/status", RawQuery: "status=suspended"}, reqs[0])
}

func TestClient_DeleteStand_EscapesID(t *testing.T) {
	fg, srv := newFakeGateway(t, map[string]fakeResponse{
		"DELETE /api/market-stands/a%2Fb": {204, ``},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	require.NoError(t, client.DeleteStand(context.Background(), "a/b"))
	assert.Equal(t, "/api/market-stands/a%2Fb", fg.Requests()[0].Path)
}

func TestClient_Failures(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/dashboard/stats":     {500, `{"detail":"boom"}`},
		"GET /api/market-stands":       {200, `[{"id":"s1","name":"","status":"active"}]`},
		"DELETE /api/market-stands/s1": {404, `{"detail":"Not Found"}`},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)
	ctx := context.Background()

	t.Run("non-2xx", func(t *testing.T) {
		_, err := client.DashboardStats(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRequestFailed))
		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, 500, reqErr.StatusCode)
		assert.Equal(t, "DashboardStats", reqErr.Op)
	})

	t.Run("invalid payload", func(t *testing.T) {
		stands, err := client.ListStands(ctx)
		assert.Nil(t, stands)
		assert.True(t, errors.Is(err, ErrRequestFailed))
	})

	t.Run("not found on delete", func(t *testing.T) {
		err := client.DeleteStand(ctx, "s1")
		assert.True(t, errors.Is(err, ErrRequestFailed))
	})
}

func TestClient_ListStands_UnknownStatus(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/market-stands": {200, `[{"id":"s1","name":"north market","status":"pending","earnings":0,"total_sales":0}]`},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	stands, err := client.ListStands(context.Background())
	require.NoError(t, err)
	require.Len(t, stands, 1)
	assert.Equal(t, domain.StandStatus("pending"), stands[0].Status)
}

func TestClient_MalformedJSON(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/market-stands": {200, `{"not":"a list"`},
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	_, err := client.ListStands(context.Background())
	assert.True(t, errors.Is(err, ErrRequestFailed))
}

func TestClient_TransportErrorAndTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewClient(srv.URL+"/api", 50*time.Millisecond, nil)
	_, err := client.ListStands(context.Background())
	assert.True(t, errors.Is(err, ErrRequestFailed))

	dead := NewClient("http://127.0.0.1:1/api", time.Second, nil)
	err = dead.DeleteStand(context.Background(), "s1")
	assert.True(t, errors.Is(err, ErrRequestFailed))
}

func TestClient_RecordsMetrics(t *testing.T) {
	_, srv := newFakeGateway(t, map[string]fakeResponse{
		"GET /api/market-stands": {200, `[]`},
	})
	m := metrics.NewMetrics()
	client := NewClient(srv.URL+"/api", time.Second, m)

	_, err := client.ListStands(context.Background())
	require.NoError(t, err)
	_, err = client.DashboardStats(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequests.WithLabelValues("ListStands", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequests.WithLabelValues("DashboardStats", "error")))
}

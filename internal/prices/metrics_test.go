package prices_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"PriceStore/internal/prices"
)

const recordsHeader = `# HELP prices_records Number of price records currently held.
# TYPE prices_records gauge
`

func TestRecordsCollector(t *testing.T) {
	ctx := context.Background()
	store := prices.NewMemStore()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prices.NewRecordsCollector(store, zap.NewNop()))

	if err := testutil.GatherAndCompare(reg, strings.NewReader(recordsHeader+"prices_records 0\n"), "prices_records"); err != nil {
		t.Fatalf("empty: %v", err)
	}

	a, _ := store.Create(ctx, 1)
	_, _ = store.Create(ctx, 2)
	_, _ = store.Create(ctx, 3)
	_ = store.Delete(ctx, a.ID)

	if err := testutil.GatherAndCompare(reg, strings.NewReader(recordsHeader+"prices_records 2\n"), "prices_records"); err != nil {
		t.Fatalf("after writes: %v", err)
	}
}

type countFailStore struct {
	prices.Store
}

func (countFailStore) Count(context.Context) (int, error) { return 0, errors.New("unavailable") }

func TestRecordsCollector_CountError(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prices.NewRecordsCollector(countFailStore{Store: prices.NewStore()}, nil))

	if _, err := reg.Gather(); err == nil {
		t.Fatalf("expected gather error")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	const token = "scrape-token"

	reg := prometheus.NewRegistry()
	s := &prices.Server{Store: prices.NewStore(), Log: zap.NewNop()}
	h := prices.NewHandler(s, prices.HTTPDeps{
		Log:            zap.NewNop(),
		Service:        "prices",
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   token,
	})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/prices", map[string]any{"price": 42})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, _ = doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated scrape status=%d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	mresp, err := c.Do(req)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer mresp.Body.Close()
	if mresp.StatusCode != http.StatusOK {
		t.Fatalf("scrape status=%d", mresp.StatusCode)
	}

	if n, err := testutil.GatherAndCount(reg, "http_requests_total"); err != nil || n == 0 {
		t.Fatalf("http_requests_total series=%d err=%v", n, err)
	}
	if err := testutil.GatherAndCompare(reg, strings.NewReader(recordsHeader+"prices_records 1\n"), "prices_records"); err != nil {
		t.Fatalf("records: %v", err)
	}
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := prices.NewHandler(&prices.Server{Store: prices.NewStore()}, prices.HTTPDeps{
		Log:      zap.NewNop(),
		Service:  "prices",
		Registry: reg,
	})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	resp, _ := doJSON(t, &http.Client{}, http.MethodGet, ts.URL+"/metrics", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want=404", resp.StatusCode)
	}
}

package kit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWriteError_IncludesRequestID(t *testing.T) {
	h := chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": "x"})
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prices/x", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}

	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	if er.Error != "not found" || er.RequestID == "" {
		t.Fatalf("resp=%+v", er)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Price *uint64 `json:"price"`
	}

	cases := []struct {
		name    string
		body    string
		limit   int64
		wantErr bool
	}{
		{"ok", `{"price": 5}`, 1 << 10, false},
		{"ok trailing whitespace", "{\"price\": 5}\n", 1 << 10, false},
		{"unknown field", `{"price": 5, "x": 1}`, 1 << 10, true},
		{"trailing object", `{"price": 5} {}`, 1 << 10, true},
		{"negative", `{"price": -5}`, 1 << 10, true},
		{"empty", ``, 1 << 10, true},
		{"over limit", `{"price": 5}`, 4, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var p payload
			err := DecodeJSON(w, r, tc.limit, &p)
			if tc.wantErr != (err != nil) {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
			if !tc.wantErr && (p.Price == nil || *p.Price != 5) {
				t.Fatalf("decoded=%+v", p)
			}
		})
	}
}

func TestDecodeJSON_TrailingDataError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} []`))
	err := DecodeJSON(httptest.NewRecorder(), r, 1<<10, &struct{}{})
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("err=%v want ErrTrailingData", err)
	}
}

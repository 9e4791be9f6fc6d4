package prices

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"PriceStore/pkg/kit"
)

const (
	defaultMaxBody = 1 << 20
	readyTimeout   = 1 * time.Second
)

type Server struct {
	Store Store
	Log   *zap.Logger

	// MaxBodyBytes caps request bodies; zero means 1 MiB.
	MaxBodyBytes int64
	// Limiter, when set, guards the mutating routes.
	Limiter *kit.IPRateLimiter
}

type priceReq struct {
	Price *uint64 `json:"price"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route("/prices", func(pr chi.Router) {
		pr.Get("/", s.list)
		pr.Get("/{id}", s.get)

		pr.Group(func(wr chi.Router) {
			if s.Limiter != nil {
				wr.Use(s.Limiter.Middleware)
			}
			wr.Post("/", s.create)
			wr.Patch("/{id}", s.update)
			wr.Delete("/{id}", s.delete)
		})
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	prices, err := s.Store.List(r.Context())
	if err != nil {
		s.logger().Error("list prices failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, prices)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	amount, ok := s.decodePrice(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Create(r.Context(), amount)
	if err != nil {
		s.logger().Error("create price failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, "get price failed", id, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	amount, ok := s.decodePrice(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Update(r.Context(), id, amount)
	if err != nil {
		s.writeStoreError(w, r, "update price failed", id, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, "delete price failed", id, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", map[string]any{"id": raw})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decodePrice(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBody
	}

	var req priceReq
	if err := kit.DecodeJSON(w, r, limit, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return 0, false
	}
	if req.Price == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "price required", nil)
		return 0, false
	}
	return *req.Price, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, msg string, id uuid.UUID, err error) {
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id.String()})
		return
	}
	s.logger().Error(msg, zap.Error(err), zap.Stringer("id", id))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

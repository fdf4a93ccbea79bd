package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"contract-assistant/internal/helper"
	"contract-assistant/internal/models"
	"contract-assistant/internal/vectorstore"
)

// Chain is the part of the RAG chain the API exposes.
type Chain interface {
	Answer(ctx context.Context, question string) (*models.Answer, error)
	Stream(ctx context.Context, question string, fn func(ctx context.Context, chunk []byte) error) (*models.Answer, error)
}

// Server exposes the RAG chain over HTTP.
type Server struct {
	chain  Chain
	router chi.Router
}

type invokeRequest struct {
	Input string `json:"input"`
}

type invokeResponse struct {
	Output *models.Answer `json:"output"`
}

type batchRequest struct {
	Inputs []string `json:"inputs"`
}

type batchResponse struct {
	Outputs []*models.Answer `json:"outputs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(chain Chain) *Server {
	s := &Server{chain: chain}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(requestLogger)

	r.Route("/contract-assistant", func(r chi.Router) {
		r.Post("/invoke", s.handleInvoke)
		r.Post("/batch", s.handleBatch)
		r.Post("/stream", s.handleStream)
		r.Get("/playground", s.handlePlayground)
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("Starting API server")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("input must not be empty"))
		return
	}

	answer, err := s.chain.Answer(r.Context(), req.Input)
	if err != nil {
		writeChainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invokeResponse{Output: answer})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if len(req.Inputs) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("inputs must not be empty"))
		return
	}

	outputs := make([]*models.Answer, 0, len(req.Inputs))
	for _, input := range req.Inputs {
		answer, err := s.chain.Answer(r.Context(), input)
		if err != nil {
			writeChainError(w, err)
			return
		}
		outputs = append(outputs, answer)
	}
	writeJSON(w, http.StatusOK, batchResponse{Outputs: outputs})
}

// handleStream answers over server-sent events: one "data:" event per model
// token, then an "end" event carrying the citation list.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("input must not be empty"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	answer, err := s.chain.Stream(r.Context(), req.Input, func(_ context.Context, chunk []byte) error {
		if _, err := fmt.Fprintf(w, "data: %s\n\n", chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", err.Error())
		flusher.Flush()
		return
	}

	citations, _ := json.Marshal(answer.Citations)
	fmt.Fprintf(w, "event: end\ndata: %s\n\n", citations)
	flusher.Flush()
}

func (s *Server) handlePlayground(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(playgroundHTML))
}

func writeChainError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, vectorstore.ErrEmptyIndex) {
		status = http.StatusConflict
	}
	writeError(w, status, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Error().Err(err).Int("status", status).Msg("Request failed")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// requestLogger tags every request with an id and logs method, path and timing.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, err := helper.GenerateUUID()
		if err != nil {
			requestID = "unknown"
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

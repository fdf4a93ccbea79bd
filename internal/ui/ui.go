package ui

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"contract-assistant/internal/config"
	"contract-assistant/internal/ingest"
	"contract-assistant/internal/models"
	"contract-assistant/internal/rag"
	"contract-assistant/internal/vectorstore"
)

// Chain is the part of the RAG chain the UI needs.
type Chain interface {
	Answer(ctx context.Context, question string) (*models.Answer, error)
}

// UI serves the three-tab web form: ingestion, chat, and API instructions.
type UI struct {
	cfg      *config.Config
	embedder embeddings.Embedder
	store    vectorstore.Store
	chain    Chain
	router   chi.Router
	markdown goldmark.Markdown
}

type pageData struct {
	Status     string
	StatusKind string
	Question   string
	AnswerHTML template.HTML
	APIHost    string
	APIPort    int
}

func New(cfg *config.Config, embedder embeddings.Embedder, store vectorstore.Store, chain Chain) *UI {
	u := &UI{
		cfg:      cfg,
		embedder: embedder,
		store:    store,
		chain:    chain,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}

	r := chi.NewRouter()
	r.Get("/", u.handleIndex)
	r.Post("/ingest", u.handleIngest)
	r.Post("/chat", u.handleChat)
	u.router = r
	return u
}

func (u *UI) Handler() http.Handler {
	return u.router
}

// ListenAndServe blocks serving the UI on addr.
func (u *UI) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("Starting web UI")
	srv := &http.Server{
		Addr:              addr,
		Handler:           u.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (u *UI) handleIndex(w http.ResponseWriter, r *http.Request) {
	u.render(w, pageData{APIHost: u.cfg.Server.Host, APIPort: u.cfg.Server.APIPort})
}

// handleIngest saves the uploaded files to a temp dir and runs them through
// the ingestion pipeline.
func (u *UI) handleIngest(w http.ResponseWriter, r *http.Request) {
	data := pageData{APIHost: u.cfg.Server.Host, APIPort: u.cfg.Server.APIPort}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		data.Status, data.StatusKind = fmt.Sprintf("Upload failed: %v", err), "error"
		u.render(w, data)
		return
	}
	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		data.Status, data.StatusKind = "Please upload files first.", "warn"
		u.render(w, data)
		return
	}

	tmpDir, err := os.MkdirTemp("", "contract-upload-*")
	if err != nil {
		data.Status, data.StatusKind = fmt.Sprintf("Upload failed: %v", err), "error"
		u.render(w, data)
		return
	}
	defer os.RemoveAll(tmpDir)

	var paths []string
	for _, upload := range uploads {
		src, err := upload.Open()
		if err != nil {
			data.Status, data.StatusKind = fmt.Sprintf("Upload failed: %v", err), "error"
			u.render(w, data)
			return
		}
		dstPath := filepath.Join(tmpDir, filepath.Base(upload.Filename))
		dst, err := os.Create(dstPath)
		if err == nil {
			_, err = io.Copy(dst, src)
			dst.Close()
		}
		src.Close()
		if err != nil {
			data.Status, data.StatusKind = fmt.Sprintf("Upload failed: %v", err), "error"
			u.render(w, data)
			return
		}
		paths = append(paths, dstPath)
	}

	count, err := ingest.Files(r.Context(), u.cfg, u.embedder, u.store, paths)
	if err != nil {
		log.Error().Err(err).Msg("Ingestion error")
		data.Status, data.StatusKind = fmt.Sprintf("Error during ingestion: %v", err), "error"
		u.render(w, data)
		return
	}

	data.Status = fmt.Sprintf("Successfully ingested %d files (%d chunks). Index saved to disk.", len(paths), count)
	data.StatusKind = "ok"
	u.render(w, data)
}

func (u *UI) handleChat(w http.ResponseWriter, r *http.Request) {
	data := pageData{APIHost: u.cfg.Server.Host, APIPort: u.cfg.Server.APIPort}

	question := r.FormValue("question")
	data.Question = question

	answer, err := u.chain.Answer(r.Context(), question)
	if err != nil {
		log.Error().Err(err).Msg("Query error")
		data.Status, data.StatusKind = fmt.Sprintf("Error: %v", err), "error"
		u.render(w, data)
		return
	}

	data.AnswerHTML = u.renderMarkdown(rag.Format(answer))
	u.render(w, data)
}

// renderMarkdown converts the model's markdown answer to HTML for display.
func (u *UI) renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := u.markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

func (u *UI) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Error rendering template")
	}
}

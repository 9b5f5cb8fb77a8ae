// CLAUDE:SUMMARY Entry point for the quizforge HTTP service — chi router, shield stack, Basic Auth admin, optional MCP stdio.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/quizforge/dbopen"
	"github.com/hazyhaar/quizforge/docpipe"
	"github.com/hazyhaar/quizforge/horoschat"
	"github.com/hazyhaar/quizforge/quizgen"
	"github.com/hazyhaar/quizforge/quizstore"
	"github.com/hazyhaar/quizforge/shield"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	mcpTransport := os.Getenv("MCP_TRANSPORT")

	// Logging. Stdio MCP owns stdout, so logs go to stderr in that mode.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logOut := io.Writer(os.Stdout)
	if mcpTransport == "stdio" {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Quiz DB.
	db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll(), dbopen.WithSchema(quizstore.Schema()))
	if err != nil {
		slog.Error("quiz db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := quizstore.NewWithDB(db, quizstore.Config{Path: cfg.DBPath, Logger: logger})

	if err := shield.Init(db); err != nil {
		slog.Error("shield init", "error", err)
		os.Exit(1)
	}

	// Pipeline components.
	pipe := docpipe.New(docpipe.Config{MaxBytes: cfg.MaxUploadBytes, Logger: logger})
	llmCfg := cfg.LLM
	llmCfg.Logger = logger
	chat := horoschat.New(llmCfg)
	genCfg := cfg.Generation
	genCfg.Logger = logger
	gen := quizgen.New(chat, genCfg)

	if cfg.LLM.Endpoint == "" {
		slog.Warn("LLM_ENDPOINT not set, generation will return empty quizzes")
	}

	// Stdio MCP replaces the HTTP server entirely.
	if mcpTransport == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "quizforge",
			Version: "1.0.0",
		}, nil)
		pipe.RegisterMCP(mcpSrv)
		gen.RegisterMCP(mcpSrv, pipe)

		slog.Info("MCP stdio starting", "model", chat.Model())
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	api := &apiServer{
		store: store,
		pipe:  pipe,
		gen:   gen,
	}

	// Router.
	r := chi.NewRouter()
	stack, rl := shield.DefaultAPIStack(db)
	for _, mw := range stack {
		r.Use(mw)
	}
	rl.StartReloader(ctx.Done())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.With(shield.MaxBody(cfg.MaxUploadBytes)).Post("/api/quizzes", api.createQuiz)
	r.Get("/api/quizzes/{quizID}", api.getQuiz)
	r.Post("/api/quizzes/{quizID}/sessions", api.createSession)
	r.Get("/api/sessions/{sessionID}", api.getSession)
	r.Post("/api/sessions/{sessionID}/start", api.startSession)
	r.Post("/api/sessions/{sessionID}/complete", api.completeSession)

	// Admin endpoints behind HTTP Basic Auth with a bcrypt hash.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAdmin(cfg.Admin.User, cfg.Admin.PasswordHash))
		r.Get("/quizzes", api.listQuizzes)
	})
	if cfg.Admin.PasswordHash == "" {
		slog.Warn("ADMIN_PASSWORD_HASH not set, admin endpoints disabled")
	}

	// HTTP server.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      300 * time.Second, // generation holds the request open
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "model", chat.Model())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// --- Handlers ---

type apiServer struct {
	store *quizstore.Store
	pipe  *docpipe.Pipeline
	gen   *quizgen.Generator
}

// createQuiz accepts a multipart upload ("document" file part plus generation
// fields), runs the full extract→generate→persist pipeline and returns the
// stored quiz.
func (s *apiServer) createQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, 400, fmt.Errorf("multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, 400, fmt.Errorf("document part required: %w", err))
		return
	}
	defer file.Close()

	format, err := docpipe.DetectFormat(header.Filename)
	if err != nil {
		writeError(w, 415, err)
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, 400, err)
		return
	}

	params, err := generationParams(r)
	if err != nil {
		writeError(w, 400, err)
		return
	}

	content, err := s.pipe.Extract(r.Context(), data, format)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	result, err := s.gen.Generate(r.Context(), content, params)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	id, err := s.store.SaveQuiz(r.Context(), result.Quiz, result.Metadata)
	if err != nil {
		writeError(w, 500, err)
		return
	}
	writeJSON(w, 201, map[string]any{
		"id":       id,
		"quiz":     result.Quiz,
		"metadata": result.Metadata,
	})
}

func (s *apiServer) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, 200, quiz)
}

func (s *apiServer) listQuizzes(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListQuizzes(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		writeError(w, 500, err)
		return
	}
	if list == nil {
		list = []quizstore.QuizSummary{}
	}
	writeJSON(w, 200, list)
}

func (s *apiServer) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient        string `json:"recipient"`
		TimeLimitSeconds int64  `json:"timeLimitSeconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}
	sess, err := s.store.CreateSession(r.Context(), chi.URLParam(r, "quizID"),
		req.Recipient, time.Duration(req.TimeLimitSeconds)*time.Second)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, 201, sessionView(sess))
}

func (s *apiServer) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, 200, sessionView(sess))
}

func (s *apiServer) startSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.StartSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, 200, sessionView(sess))
}

func (s *apiServer) completeSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score   float64         `json:"score"`
		Answers json.RawMessage `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, err)
		return
	}
	sess, err := s.store.CompleteSession(r.Context(), chi.URLParam(r, "sessionID"), req.Score, req.Answers)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, 200, sessionView(sess))
}

// sessionView augments the stored session with its derived state.
func sessionView(sess *quizstore.Session) map[string]any {
	return map[string]any{
		"session": sess,
		"state":   sess.State(time.Now().UTC()),
	}
}

// generationParams reads generation fields from the multipart form.
func generationParams(r *http.Request) (quizgen.GenerationParams, error) {
	var params quizgen.GenerationParams
	n, err := strconv.Atoi(r.FormValue("numQuestions"))
	if err != nil {
		return params, fmt.Errorf("numQuestions: %w", err)
	}
	params.NumQuestions = n
	params.Difficulty = quizgen.Difficulty(r.FormValue("difficulty"))
	params.Language = r.FormValue("language")
	params.QuizName = r.FormValue("quizName")
	if types := r.FormValue("questionTypes"); types != "" {
		for _, t := range strings.Split(types, ",") {
			params.QuestionTypes = append(params.QuestionTypes, quizgen.QuestionType(strings.TrimSpace(t)))
		}
	}
	return params, nil
}

// --- Error mapping ---

// writePipelineError maps extraction and generation failures onto HTTP
// statuses: client content problems are 4xx, model misbehavior is 502.
func writePipelineError(w http.ResponseWriter, err error) {
	var schemaErr *quizgen.SchemaValidationError
	switch {
	case errors.Is(err, docpipe.ErrUnsupportedFormat):
		writeError(w, 415, err)
	case errors.Is(err, docpipe.ErrTooLarge):
		writeError(w, 413, err)
	case errors.Is(err, docpipe.ErrExtraction),
		errors.Is(err, quizgen.ErrEmptyContent),
		errors.Is(err, quizgen.ErrContentTooLimited),
		errors.Is(err, quizgen.ErrNoContent):
		writeError(w, 422, err)
	case errors.Is(err, quizgen.ErrMalformedResponse),
		errors.Is(err, quizgen.ErrModelInvocation),
		errors.As(err, &schemaErr):
		writeError(w, 502, err)
	default:
		writeError(w, 500, err)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quizstore.ErrNotFound):
		writeError(w, 404, err)
	case errors.Is(err, quizstore.ErrSessionExpired):
		writeError(w, 410, err)
	case errors.Is(err, quizstore.ErrSessionState):
		writeError(w, 409, err)
	default:
		writeError(w, 500, err)
	}
}

// --- Auth middleware ---

// requireAdmin enforces HTTP Basic Auth against a bcrypt password hash.
// An empty hash disables the protected routes entirely.
func requireAdmin(user, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if passwordHash == "" {
				writeJSON(w, 503, map[string]string{"error": "admin endpoints disabled"})
				return
			}
			u, p, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(p)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="quizforge admin"`)
				writeJSON(w, 401, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

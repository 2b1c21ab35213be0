package main

import (
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "svw.info/nsudoku/internal/adapters/http"
	"svw.info/nsudoku/internal/generator"
	"svw.info/nsudoku/internal/hint"
	"svw.info/nsudoku/internal/infrastructure/storage"
	"svw.info/nsudoku/internal/ports"
	"svw.info/nsudoku/internal/render"
	"svw.info/nsudoku/internal/solver"
	"svw.info/nsudoku/internal/usecase"
	"svw.info/nsudoku/internal/validator"
	"svw.info/nsudoku/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory (fs) or database file (sqlite)")
	storeKind := flag.String("store", "fs", "puzzle store: fs|sqlite")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	solverKind := flag.String("solver", "hybrid", "solver to use: hybrid|backtrack|dlx")
	block := flag.Int("block-size", 3, "default block size for generated puzzles")
	trace := flag.Bool("trace", false, "log every placement/clear the engine makes (debug level)")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))

	var obs ports.Observer
	if *trace {
		obs = render.NewSlog(logger)
	}

	var s ports.Solver
	switch strings.ToLower(strings.TrimSpace(*solverKind)) {
	case "backtrack", "backtracking":
		bt := solver.NewBacktracking()
		bt.Observer = obs
		s = bt
	case "dlx":
		s = solver.NewDLX()
	default:
		hy := solver.NewHybrid()
		hy.Observer = obs
		s = hy
	}

	var st ports.Storage
	switch strings.ToLower(strings.TrimSpace(*storeKind)) {
	case "sqlite":
		db, err := storage.NewSQLite(*persist)
		if err != nil {
			logger.Error("open sqlite store", "path", *persist, "err", err)
			os.Exit(1)
		}
		defer db.Close()
		st = db
	default:
		_ = os.MkdirAll(*persist, 0o755)
		st = storage.NewFS(*persist)
	}

	// Wire providers → use cases → HTTP adapter. The uniqueness probe
	// inside generation always runs on DLX; it is much faster there.
	g := generator.NewUniqueGenerator(solver.NewDLX())
	uc := usecase.NewService(s, g, validator.New(), hint.NewSingles(), st)
	h := httpadapter.New(uc, *block)

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "store", *storeKind, "persist", *persist, "solver", *solverKind)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"frustration-list/internal/model"
	"frustration-list/internal/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

type Server struct {
	session *session.Session
	logger  *zap.Logger
	router  *mux.Router
	tmpl    *template.Template
	server  *http.Server
}

func NewServer(sess *session.Session, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"label": func(v model.View) string { return v.Label() },
	}).ParseFS(templateFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		session: sess,
		logger:  logger,
		router:  mux.NewRouter(),
		tmpl:    tmpl,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/state", s.handleState).Methods("GET")

	// App Routes
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/top", s.handleTop).Methods("GET")
	s.router.HandleFunc("/browse", s.handleBrowse).Methods("GET")
	s.router.HandleFunc("/submit", s.handleSubmitForm).Methods("GET")
	s.router.HandleFunc("/submit", s.handleSubmit).Methods("POST")
	s.router.HandleFunc("/admin", s.handleAdmin).Methods("GET")
	s.router.HandleFunc("/admin/{id}/publish", s.handlePublish).Methods("POST")
	s.router.HandleFunc("/admin/{id}/reject", s.handleReject).Methods("POST")
	s.router.HandleFunc("/view/{name}", s.handleSwitchView).Methods("POST")
}

// ServeHTTP lets the server be mounted or tested without listening.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start launches the HTTP server
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("Web server listening", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

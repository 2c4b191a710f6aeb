package web

import (
	"crypto/rand"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"coursectl/pkg/catalog"
	"coursectl/pkg/exporter"
	"coursectl/pkg/selection"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	cookieName = "coursectl-session"
	sessionKey = "sid"

	// sessionIdle is how long a workspace survives without a request
	sessionIdle = 4 * time.Hour
)

// workspace is the state one browser session owns
type workspace struct {
	selection *selection.Set
	major     string
	lastSeen  time.Time
}

// Server serves the course browser over HTTP. Every browser gets its own
// workspace, found through a session cookie; nothing outlives the process.
type Server struct {
	catalog      *catalog.Catalog
	term         exporter.Term
	defaultMajor string
	store        sessions.Store
	tmpl         *template.Template

	mu         sync.Mutex
	workspaces map[string]*workspace
	idle       time.Duration
	now        func() time.Time
}

// NewServer creates a server over a loaded catalog. A nil or short secret
// is replaced by a random one, which invalidates cookies on restart.
func NewServer(cat *catalog.Catalog, term exporter.Term, defaultMajor string, secret []byte) (*Server, error) {
	if len(secret) < 32 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("could not generate session secret: %w", err)
		}
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionIdle / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if cat.Major(defaultMajor) == nil {
		if majors := cat.Majors(); len(majors) > 0 {
			defaultMajor = majors[0]
		}
	}

	return &Server{
		catalog:      cat,
		term:         term,
		defaultMajor: defaultMajor,
		store:        store,
		tmpl:         tmpl,
		workspaces:   make(map[string]*workspace),
		idle:         sessionIdle,
		now:          time.Now,
	}, nil
}

// Handler returns the net/http routes of the course browser
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /toggle", s.handleToggle)
	mux.HandleFunc("POST /remove", s.handleRemove)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /export.ics", s.handleExport)
	return mux
}

// App wraps the routes in a fiber application with request logging
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "coursectl",
	})

	app.Use(logger.New())
	app.All("/*", adaptor.HTTPHandler(s.Handler()))

	return app
}

// lookup returns the caller's workspace if it has a live session, or nil.
// Callers must hold s.mu.
func (s *Server) lookup(r *http.Request) *workspace {
	s.evictIdle()

	session, err := s.store.Get(r, cookieName)
	if err != nil {
		// a cookie signed with an old secret: treat it as no session
		log.Debugf("discarding unreadable session cookie: %v", err)
		return nil
	}

	id, _ := session.Values[sessionKey].(string)
	ws, ok := s.workspaces[id]
	if !ok || id == "" {
		return nil
	}
	ws.lastSeen = s.now()
	return ws
}

// workspaceFor returns the caller's workspace, starting a session if needed.
// The cookie is re-sent on every call so it expires together with the workspace.
// Callers must hold s.mu.
func (s *Server) workspaceFor(w http.ResponseWriter, r *http.Request) *workspace {
	ws := s.lookup(r)
	session, _ := s.store.Get(r, cookieName)

	if ws == nil {
		id := uuid.NewString()
		session.Values[sessionKey] = id
		ws = &workspace{
			selection: selection.New(),
			major:     s.defaultMajor,
			lastSeen:  s.now(),
		}
		s.workspaces[id] = ws
		log.Infof("started session %s", id)
	}

	if err := session.Save(r, w); err != nil {
		log.Warnf("could not save session cookie: %v", err)
	}
	return ws
}

// evictIdle drops workspaces that have not been used within the idle window.
// Callers must hold s.mu.
func (s *Server) evictIdle() {
	cutoff := s.now().Add(-s.idle)
	for id, ws := range s.workspaces {
		if ws.lastSeen.Before(cutoff) {
			delete(s.workspaces, id)
			log.Infof("ended idle session %s", id)
		}
	}
}

// Sessions returns the number of live browser sessions
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

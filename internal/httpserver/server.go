// internal/httpserver/server.go
//
// HTTP server wiring for the word game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session creation: POST /games (free play), POST /daily (daily word).
//   - Session endpoints under /games/{id}, each driving one engine operation.
//
// Notes:
//   - Every session endpoint requires the bearer token issued at creation;
//     its "gid" claim must match {id}.
//   - Guard-rejected engine operations are not errors: they answer 200 with
//     "applied": false and the unchanged state.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/robalobadob/wordgame/internal/daily"
	"github.com/robalobadob/wordgame/internal/game"
	"github.com/robalobadob/wordgame/internal/store"
	"github.com/robalobadob/wordgame/internal/telemetry"
	"github.com/robalobadob/wordgame/internal/words"
)

// Options carries the collaborators of a Server.
type Options struct {
	Pool         words.Pool      // loaded word pool (reported by /debug/words)
	Source       game.WordSource // free-play word source
	Daily        *daily.Source   // daily word source; nil disables /daily
	Tokens       *Tokens
	WordLength   int           // default length for new free-play games
	SessionTTL   time.Duration // idle sessions older than this are pruned
	ClientOrigin string
}

// Server bundles router, session store and word sources.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Tokens == nil {
		opts.Tokens = NewTokens("", 0)
	}
	if !game.ValidWordLength(opts.WordLength) {
		opts.WordLength = game.DefaultWordLength
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped zerolog logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordgame","endpoints":["/health","POST /games","POST /daily","/games/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleWordStats)

	// --- sessions ---
	s.r.Post("/games", s.handleNewGame)
	s.mountDaily(s.r)
	s.r.Route("/games/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleState)
		r.Post("/begin", s.op("begin", (*game.Engine).Begin))
		r.Post("/pause", s.op("pause", (*game.Engine).Pause))
		r.Post("/resume", s.op("resume", (*game.Engine).Resume))
		r.Post("/end", s.op("end", (*game.Engine).End))
		r.Post("/restart", s.op("restart", (*game.Engine).Restart))
		r.Post("/submit", s.op("submit", (*game.Engine).Submit))
		r.Delete("/letters", s.op("remove_letter", (*game.Engine).RemoveLetter))
		r.Post("/letters", s.handleAppendLetter)
		r.Post("/keys", s.handleKey)
		r.Put("/length", s.handleLength)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
})

// cors enables CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ctxSessionKey is the context key type for the resolved *store.Session.
type ctxSessionKey struct{}

// requireSession verifies the bearer token against {id} and loads the session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		gid, err := s.opts.Tokens.Verify(tok)
		if err != nil || gid != id {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(r.Context(), id)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				hlog.FromRequest(r).Error().Err(err).Str("gameId", id).Msg("load session")
			}
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /games.
type newGameReq struct {
	Length int `json:"length"` // 0 uses the server default
}
type newGameRes struct {
	GameID  string        `json:"gameId"`
	Token   string        `json:"token"`
	Expires time.Time     `json:"expires"`
	Date    string        `json:"date,omitempty"` // daily games only
	State   game.Snapshot `json:"state"`
}

// stateRes is the body of every session endpoint.
type stateRes struct {
	Applied bool          `json:"applied"`
	State   game.Snapshot `json:"state"`
}

// handleNewGame creates a free-play session in not_started.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	length := req.Length
	if length == 0 {
		length = s.opts.WordLength
	}
	if !game.ValidWordLength(length) {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	s.createSession(w, r, "free", game.New(s.opts.Source, length), "")
}

// createSession stores e under a fresh ID and answers with its token.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request, mode string, e *game.Engine, date string) {
	ctx := r.Context()
	if s.opts.SessionTTL > 0 {
		if n := s.store.Prune(ctx, time.Now().Add(-s.opts.SessionTTL)); n > 0 {
			hlog.FromRequest(r).Debug().Int("pruned", n).Msg("idle sessions dropped")
		}
	}

	sess := store.NewSession(uuid.NewString(), mode, e)
	if err := s.store.Save(ctx, sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.opts.Tokens.Sign(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	var snap game.Snapshot
	sess.Do(func(e *game.Engine) { snap = e.Snapshot() })
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Str("mode", mode).Int("length", snap.WordLength).Msg("session created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Token: tok, Expires: exp, Date: date, State: snap})
}

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	sessionFrom(r).Do(func(e *game.Engine) { snap = e.Snapshot() })
	_ = json.NewEncoder(w).Encode(stateRes{Applied: false, State: snap})
}

// op adapts a no-argument engine operation into a handler.
func (s *Server) op(name string, fn func(*game.Engine) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.apply(w, r, name, fn)
	}
}

// apply runs fn against the session engine inside a span and writes the result.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, name string, fn func(*game.Engine) bool) {
	sess := sessionFrom(r)
	_, span := telemetry.Tracer("httpserver").Start(r.Context(), "game."+name)
	defer span.End()

	var (
		applied bool
		snap    game.Snapshot
	)
	sess.Do(func(e *game.Engine) {
		applied = fn(e)
		snap = e.Snapshot()
	})

	span.SetAttributes(
		attribute.String("game.id", sess.ID),
		attribute.Bool("game.applied", applied),
		attribute.String("game.phase", snap.Phase.String()),
		attribute.Int("game.attempts", len(snap.Attempts)),
	)
	logOutcome(hlog.FromRequest(r), sess.ID, name, applied, snap)

	_ = json.NewEncoder(w).Encode(stateRes{Applied: applied, State: snap})
}

// logOutcome records round-ending transitions at info level, the rest at debug.
func logOutcome(l *zerolog.Logger, id, op string, applied bool, snap game.Snapshot) {
	ev := l.Debug()
	if applied && snap.Phase.Over() {
		ev = l.Info().Int("attempts", len(snap.Attempts)).Bool("forfeit", snap.Forfeit)
	}
	ev.Str("gameId", id).Str("op", op).Bool("applied", applied).Str("phase", snap.Phase.String()).Msg("game op")
}

type letterReq struct {
	Letter string `json:"letter"`
}

// handleAppendLetter appends one letter; anything but a single character is a no-op.
func (s *Server) handleAppendLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.apply(w, r, "append_letter", func(e *game.Engine) bool {
		if utf8.RuneCountInString(req.Letter) != 1 {
			return false
		}
		c, _ := utf8.DecodeRuneInString(req.Letter)
		return e.AppendLetter(c)
	})
}

type keyReq struct {
	Key string `json:"key"`
}

// handleKey routes a key name through Engine.Press.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.apply(w, r, "press", func(e *game.Engine) bool { return e.Press(req.Key) })
}

type lengthReq struct {
	Length int `json:"length"`
}

// handleLength changes the word length, which starts a new round.
func (s *Server) handleLength(w http.ResponseWriter, r *http.Request) {
	var req lengthReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !game.ValidWordLength(req.Length) {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	s.apply(w, r, "set_length", func(e *game.Engine) bool { return e.SetWordLength(req.Length) })
}

// handleWordStats reports pool sizes per length.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for l, n := range s.opts.Pool.Counts() {
		counts[strconv.Itoa(l)] = n
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"total": s.opts.Pool.Size(), "byLength": counts})
}

// ------------------------------- small util --------------------------------

// writeError writes {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

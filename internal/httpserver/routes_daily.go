// internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily" mode.
//   - POST /daily → start a session whose secret is today's daily word.
//
// The daily word is the same for every player on a UTC date (HMAC of date +
// salt, see package daily). Sessions are otherwise ordinary: the same
// /games/{id}/* endpoints drive them. Restart replays the same word.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordgame/internal/game"
)

type dailyReq struct {
	Length int `json:"length"`
}

// mountDaily registers /daily when a daily source is configured.
func (s *Server) mountDaily(r chi.Router) {
	if s.opts.Daily == nil {
		return
	}
	r.Post("/daily", s.handleDaily)
}

// handleDaily creates a session with the daily source and begins the round.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyReq
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

	e := game.New(s.opts.Daily, length)
	e.Begin()
	s.createSession(w, r, "daily", e, s.opts.Daily.Date())
}

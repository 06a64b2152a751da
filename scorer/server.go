package scorer

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Server exposes a Scorer over HTTP.
type Server struct {
	scorer Scorer
	mux    *mux.Router
}

func NewServer(s Scorer) *Server {
	srv := &Server{scorer: s}
	srv.mux = srv.initMux()
	return srv
}

func (s *Server) initMux() *mux.Router {
	m := mux.NewRouter()
	m.HandleFunc("/score", s.serveScore).Methods("POST")
	m.HandleFunc("/health", s.serveHealth).Methods("GET")
	return m
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) serveScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	scores, err := s.scorer.Score(r.Context(), req.State, req.Groups)
	if err != nil {
		log.Warn().Err(err).Msg("scoring failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scoreResponse{Scores: scores}); err != nil {
		http.Error(w, "failed to encode scores: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

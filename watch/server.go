package watch

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server exposes the raw data files and the screening API over HTTP. It
// only reads from the store, so it can serve queries while ingestion is
// still in flight.
type Server struct {
	Store   *Store
	Status  *StatusLog
	DataDir string
	Log     zerolog.Logger
}

// Routes wires the HTTP endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.cors)
	r.Get("/data/{filename}", s.handleData)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/search", s.handleSearch)
	return r
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	switch {
	case strings.HasSuffix(name, ".xml"):
		w.Header().Set("Content-Type", "application/xml")
	case strings.HasSuffix(name, ".csv"):
		w.Header().Set("Content-Type", "text/csv")
	}
	s.Log.Debug().Str("file", name).Msg("serving data file")
	http.ServeFile(w, r, filepath.Join(s.DataDir, name))
}

type statusResponse struct {
	Counts   map[Source]int  `json:"counts"`
	Loaded   map[Source]bool `json:"loaded"`
	Total    int             `json:"total"`
	Messages []string        `json:"messages,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{
		Counts: map[Source]int{},
		Loaded: map[Source]bool{},
		Total:  s.Store.Total(),
	}
	for _, src := range Sources {
		resp.Counts[src] = s.Store.Count(src)
		resp.Loaded[src] = s.Store.Loaded(src)
	}
	if s.Status != nil {
		resp.Messages = s.Status.Messages()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	modeStr := q.Get("mode")
	if modeStr == "" {
		modeStr = string(ModeSmart)
	}
	mode, err := ParseMode(modeStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	out, err := s.Store.Search(q.Get("name"), q.Get("ref"), mode)
	if errors.Is(err, ErrEmptyQuery) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.Log.Debug().Str("mode", string(mode)).Int("total", out.Total).Msg("search served")
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

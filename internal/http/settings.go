package http

import (
	"net/http"

	"github.com/mauv0809/court-queue/internal/settings"
)

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := s.Settings.Load()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func (s *Server) SaveSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := settings.Default()
		if err := decodeJSON(r, &cfg); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Settings.Save(cfg); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

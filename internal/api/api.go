package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/CoffeeBeansLabs/allocate/internal/report"
	"github.com/CoffeeBeansLabs/allocate/internal/search"
	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

type API struct {
	db      *storage.DB
	engine  *search.Engine
	reports *report.Service
	log     zerolog.Logger
}

func NewAPI(db *storage.DB, weights search.Weights, log zerolog.Logger) *API {
	return &API{
		db:      db,
		engine:  search.NewEngine(db, weights, log),
		reports: report.NewService(db, log),
		log:     log,
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error().Err(err).Msg("encoding response")
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"message": message})
}

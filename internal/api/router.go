package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for k8s and load balancers)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Talent search
	mux.HandleFunc("/api/search/talents", a.TalentSearchHandler)
	mux.HandleFunc("/api/search/universal", a.UniversalSearchHandler)

	// CSV reports
	mux.HandleFunc("/api/reports/bench", a.BenchReportHandler)
	mux.HandleFunc("/api/reports/leaving", a.LeavingReportHandler)

	return mux
}

package main

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/hlog"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// healthHandler reports whether the storage of every resource answers a one
// item read. Probes run with hooks disabled so they do not show in the
// resource metrics.
func healthHandler(i resource.Index) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := resource.WithDisableHooks(r.Context())
		status := http.StatusOK
		checks := map[string]string{}
		for _, rsrc := range i.GetResources() {
			q := &query.Query{Fields: []string{"id"}, Page: query.Page{Number: 1, Size: 1}}
			if _, err := rsrc.Find(ctx, q); err != nil {
				hlog.FromRequest(r).Warn().Err(err).Str("resource", rsrc.Name()).Msg("Health check failed")
				checks[rsrc.Name()] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[rsrc.Name()] = "ok"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(checks)
	})
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness check; always 200 while the process is serving
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, gatesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness check covering the database, the session signer and, when configured, the preference backend
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	gatesdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer *jwtx.Signer,
	prefsPing func(ctx context.Context) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &gatesdk.HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK
		degrade := func() {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			degrade()
		}
		if signer == nil {
			checks.Signer = "error: no signing key loaded"
			degrade()
		}
		if prefsPing != nil {
			checks.Preferences = "ok"
			if err := prefsPing(r.Context()); err != nil {
				checks.Preferences = "error: " + err.Error()
				degrade()
			}
		}

		httpx.WriteJSON(w, code, gatesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

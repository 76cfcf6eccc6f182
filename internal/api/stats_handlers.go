package api

import (
	"net/http"
)

func (rt *Router) handleCompanyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.stats.CompanyStats())
}

func (rt *Router) handleEmployeeStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.stats.EmployeeStats())
}

func (rt *Router) handleAffiliateStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.stats.AffiliateStats())
}

func (rt *Router) handleMovementStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.stats.MovementStats())
}

// handleMovementLive serves the periodically refreshed snapshot rather than
// recomputing, matching the polling counters on the landing page.
func (rt *Router) handleMovementLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.movement.Snapshot())
}

func (rt *Router) handleTokensBySource(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.stats.TokensBySource())
}

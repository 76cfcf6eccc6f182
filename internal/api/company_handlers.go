package api

import (
	"net/http"
)

func (rt *Router) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.companies.ListCompanies())
}

func (rt *Router) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := rt.companies.GetCompany(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) handleCompanyEmployees(w http.ResponseWriter, r *http.Request) {
	emps, err := rt.companies.Employees(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emps)
}

func (rt *Router) handleToggleOptIn(w http.ResponseWriter, r *http.Request) {
	c, err := rt.companies.ToggleOptIn(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) handleRanking(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.companies.Ranking())
}

func (rt *Router) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.companies.Watchlist())
}

package api

import (
	"net/http"
)

type createAffiliateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (rt *Router) handleCreateAffiliate(w http.ResponseWriter, r *http.Request) {
	var req createAffiliateRequest
	if !rt.decode(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "name and a valid email are required"})
		return
	}
	aff, err := rt.affiliates.CreateAffiliate(req.Name, req.Email)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, aff)
}

func (rt *Router) handleListAffiliates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.affiliates.ListAffiliates())
}

func (rt *Router) handleGetAffiliate(w http.ResponseWriter, r *http.Request) {
	aff, err := rt.affiliates.GetAffiliate(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aff)
}

func (rt *Router) handleReferralLink(w http.ResponseWriter, r *http.Request) {
	link, err := rt.affiliates.ReferralLink(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}

type processReferralRequest struct {
	Code string `json:"code" validate:"required"`
}

// handleProcessReferral is the manual entry point for referral crediting,
// used by the affiliate dashboard form.
func (rt *Router) handleProcessReferral(w http.ResponseWriter, r *http.Request) {
	var req processReferralRequest
	if !rt.decode(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "code is required"})
		return
	}
	aff, err := rt.affiliates.ProcessReferral(req.Code)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aff)
}

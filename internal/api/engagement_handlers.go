package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/services"
)

func (rt *Router) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp := rt.store.GetEmployee(r.PathValue("id"))
	if emp == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "employee not found"})
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

func (rt *Router) handleEmployeeTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := rt.engagement.TokenHistory(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// questionView is the wire shape of one catalog question. The type switch
// below covers every question variant; a new variant will not serialize
// until it is added here.
type questionView struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Min      int      `json:"min,omitempty"`
	Max      int      `json:"max,omitempty"`
	Required bool     `json:"required"`
	Category string   `json:"category"`
}

func (rt *Router) handleSurveyQuestions(w http.ResponseWriter, r *http.Request) {
	catalog := services.SurveyQuestions()
	out := make([]questionView, 0, len(catalog))
	for _, q := range catalog {
		view := questionView{ID: q.ID(), Text: q.Prompt(), Required: q.Required(), Category: q.Category()}
		switch qq := q.(type) {
		case services.ScaleQuestion:
			view.Type = "scale"
			view.Min = qq.Min
			view.Max = qq.Max
		case services.MultipleChoiceQuestion:
			view.Type = "multiple-choice"
			view.Options = qq.Options
		case services.TextQuestion:
			view.Type = "text"
		default:
			rt.log.Warn("question type missing a wire view", zap.String("question", q.ID()))
			continue
		}
		out = append(out, view)
	}
	writeJSON(w, http.StatusOK, out)
}

type submitSurveyRequest struct {
	EmployeeID   string                  `json:"employee_id" validate:"required"`
	Answers      []services.SurveyAnswer `json:"answers" validate:"required"`
	ReferralCode string                  `json:"referral_code"`
}

type submitSurveyResponse struct {
	Employee         *models.Employee `json:"employee"`
	ReferralCredited bool             `json:"referral_credited"`
}

// handleSubmitSurvey accepts a full survey submission. A referral code, when
// present, is credited through the same operation the manual referral
// endpoint uses; a failed credit never fails the submission.
func (rt *Router) handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	var req submitSurveyRequest
	if !rt.decode(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "employee_id and answers are required"})
		return
	}
	emp, err := rt.engagement.SubmitSurvey(req.EmployeeID, req.Answers)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	credited := false
	if req.ReferralCode != "" {
		if _, err := rt.affiliates.ProcessReferral(req.ReferralCode); err != nil {
			rt.log.Info("referral credit skipped",
				zap.String("code", req.ReferralCode), zap.String("reason", err.Error()))
		} else {
			credited = true
		}
	}
	writeJSON(w, http.StatusOK, submitSurveyResponse{Employee: emp, ReferralCredited: credited})
}

type submitPledgeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Message    string `json:"message"`
}

func (rt *Router) handleSubmitPledge(w http.ResponseWriter, r *http.Request) {
	var req submitPledgeRequest
	if !rt.decode(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "employee_id is required"})
		return
	}
	pledge, err := rt.engagement.SubmitPledge(req.EmployeeID, req.Message)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pledge)
}

func (rt *Router) handlePledgeWall(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.engagement.PledgeWall())
}

type awardTokenRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Source      string `json:"source" validate:"required"`
	Description string `json:"description"`
}

func (rt *Router) handleAwardToken(w http.ResponseWriter, r *http.Request) {
	var req awardTokenRequest
	if !rt.decode(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "employee_id, a positive amount, and source are required"})
		return
	}
	tok, err := rt.engagement.AwardToken(req.EmployeeID, req.Amount, models.TokenSource(req.Source), req.Description)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

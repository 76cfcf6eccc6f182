package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/middleware"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/services"
)

// Router wires the HTTP surface to the domain services. All services share
// the one injected store; nothing here keeps state of its own besides the
// movement snapshot publisher.
type Router struct {
	store    Store
	log      *zap.Logger
	validate *validator.Validate

	auth       *services.AuthService
	engagement *services.EngagementService
	companies  *services.CompanyService
	affiliates *services.AffiliateService
	stats      *services.StatsService
	movement   *services.MovementPublisher
}

func NewRouter(store Store, log *zap.Logger, movementInterval time.Duration) *Router {
	stats := services.NewStatsService(store)
	return &Router{
		store:      store,
		log:        log,
		validate:   validator.New(),
		auth:       services.NewAuthService(store, middleware.SignToken),
		engagement: services.NewEngagementService(store),
		companies:  services.NewCompanyService(store),
		affiliates: services.NewAffiliateService(store),
		stats:      stats,
		movement:   services.NewMovementPublisher(stats, movementInterval),
	}
}

// Movement exposes the snapshot publisher so the caller can run it.
func (rt *Router) Movement() *services.MovementPublisher { return rt.movement }

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", rt.handleLogin)
	mux.HandleFunc("GET /api/auth/session", rt.handleSession)
	mux.Handle("POST /api/auth/logout",
		middleware.RequireAuth(http.HandlerFunc(rt.handleLogout)))

	mux.HandleFunc("GET /api/companies", rt.handleListCompanies)
	mux.HandleFunc("GET /api/companies/ranking", rt.handleRanking)
	mux.HandleFunc("GET /api/companies/watchlist", rt.handleWatchlist)
	mux.HandleFunc("GET /api/companies/{id}", rt.handleGetCompany)
	// The roster is personnel data for the executive dashboard, not part of
	// the public directory.
	mux.Handle("GET /api/companies/{id}/employees",
		middleware.RequireRole(models.RoleExecutive, http.HandlerFunc(rt.handleCompanyEmployees)))
	mux.Handle("POST /api/companies/{id}/opt-in",
		middleware.RequirePermission("manage_company", http.HandlerFunc(rt.handleToggleOptIn)))

	mux.HandleFunc("GET /api/employees/{id}", rt.handleGetEmployee)
	mux.HandleFunc("GET /api/employees/{id}/tokens", rt.handleEmployeeTokens)

	mux.HandleFunc("GET /api/survey/questions", rt.handleSurveyQuestions)
	mux.HandleFunc("POST /api/survey/responses", rt.handleSubmitSurvey)
	mux.HandleFunc("POST /api/pledges", rt.handleSubmitPledge)
	mux.HandleFunc("GET /api/pledges", rt.handlePledgeWall)
	mux.Handle("POST /api/tokens/award",
		middleware.RequirePermission("manage_employees", http.HandlerFunc(rt.handleAwardToken)))

	mux.HandleFunc("POST /api/affiliates", rt.handleCreateAffiliate)
	mux.HandleFunc("GET /api/affiliates", rt.handleListAffiliates)
	mux.HandleFunc("GET /api/affiliates/{id}", rt.handleGetAffiliate)
	mux.HandleFunc("GET /api/affiliates/{id}/link", rt.handleReferralLink)
	mux.HandleFunc("POST /api/referrals/process", rt.handleProcessReferral)

	mux.HandleFunc("GET /api/stats/companies", rt.handleCompanyStats)
	mux.HandleFunc("GET /api/stats/employees", rt.handleEmployeeStats)
	mux.HandleFunc("GET /api/stats/affiliates", rt.handleAffiliateStats)
	mux.HandleFunc("GET /api/stats/movement", rt.handleMovementStats)
	mux.HandleFunc("GET /api/stats/movement/live", rt.handleMovementLive)
	mux.HandleFunc("GET /api/stats/tokens-by-source", rt.handleTokensBySource)
}

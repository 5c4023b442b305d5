package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// IssueTokenRequest names the actor a development token is issued for.
type IssueTokenRequest struct {
	UserID string      `json:"userID" binding:"required,max=255"`
	Role   domain.Role `json:"role" binding:"required,oneof=ADMIN TREASURER STAFF"`
}

// IssueTokenResponse carries a signed bearer token.
type IssueTokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler issues bearer tokens outside production. Identity itself belongs to an
// external provider; this stands in for it during development and testing.
type tokenHandler struct {
	tokenService portssvc.TokenSvc
}

// registerTokenRoutes registers the development token route behind its own strict limiter.
func registerTokenRoutes(r *gin.Engine, cfg *config.Config, tokenService portssvc.TokenSvc) {
	if cfg.IsProduction {
		return
	}
	h := &tokenHandler{tokenService: tokenService}

	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth")
	auth.Use(limitMiddleware)
	{
		auth.POST("/token", h.issueToken)
	}
}

// issueToken godoc
// @Summary Issue a development token
// @Description Signs a bearer token for the given user and role. Not available in production.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body IssueTokenRequest true "Actor"
// @Success 200 {object} IssueTokenResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Failed to issue token"
// @Router /auth/token [post]
func (h *tokenHandler) issueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.tokenService.GenerateToken(domain.Actor{UserID: req.UserID, Role: req.Role})
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to issue token", Kind: "internal"})
		return
	}
	c.JSON(http.StatusOK, IssueTokenResponse{Token: token})
}

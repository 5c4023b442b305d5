package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, bs portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(bs)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("/:id", h.getBudget)
		budgets.POST("/:id/items", h.addBudgetItem)
		budgets.GET("/:id/actuals", h.getActuals)
		budgets.POST("/:id/actuals/refresh", h.refreshActuals)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Administrator or treasurer role required"
// @Failure 500 {object} dto.ErrorResponse "Failed to create budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create budget")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget, nil))
}

// getBudget godoc
// @Summary Get a budget with its items
// @Description Returns the figures as of the last refresh
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve budget"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	budget, items, err := h.budgetService.GetBudget(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget, items))
}

// addBudgetItem godoc
// @Summary Add a budget item
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param item body dto.AddBudgetItemRequest true "Category and budgeted amount"
// @Success 201 {object} dto.BudgetItemResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Administrator or treasurer role required"
// @Failure 404 {object} dto.ErrorResponse "Budget or category not found"
// @Failure 409 {object} dto.ErrorResponse "Category already budgeted"
// @Failure 500 {object} dto.ErrorResponse "Failed to add budget item"
// @Security BearerAuth
// @Router /budgets/{id}/items [post]
func (h *budgetHandler) addBudgetItem(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.AddBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.budgetService.AddBudgetItem(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "add budget item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetItemResponse(item))
}

// getActuals godoc
// @Summary Compare a budget with actual postings
// @Description Recomputes actual amounts from posted transactions in the budget period. Results may be served from cache.
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetActualsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute actuals"
// @Security BearerAuth
// @Router /budgets/{id}/actuals [get]
func (h *budgetHandler) getActuals(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	actuals, err := h.budgetService.ComputeActuals(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "compute actuals")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetActualsResponse(actuals))
}

// refreshActuals godoc
// @Summary Recompute and store budget actuals
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetActualsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to refresh actuals"
// @Security BearerAuth
// @Router /budgets/{id}/actuals/refresh [post]
func (h *budgetHandler) refreshActuals(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	actuals, err := h.budgetService.RefreshActuals(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "refresh actuals")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetActualsResponse(actuals))
}

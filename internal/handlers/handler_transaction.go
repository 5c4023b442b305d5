package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	journalService     portssvc.JournalReaderSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, js portssvc.JournalReaderSvc) *transactionHandler {
	return &transactionHandler{transactionService: ts, journalService: js}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, js portssvc.JournalReaderSvc) {
	h := newTransactionHandler(ts, js)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PATCH("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.cancelTransaction)
		transactions.GET("/:id/journal-entry", h.getTransactionJournalEntry)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income, expense or donation and posts its balanced journal entry in one step.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CreateTransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Category or cash account not found"
// @Failure 409 {object} dto.ErrorResponse "Category type mismatch"
// @Failure 500 {object} dto.ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, entry, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "record transaction")
		return
	}

	res := dto.CreateTransactionResponse{Transaction: dto.ToTransactionResponse(txn)}
	if entry != nil {
		je := dto.ToJournalEntryResponse(entry)
		res.JournalEntry = &je
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID), slog.String("transaction_no", txn.TransactionNo))
	c.JSON(http.StatusCreated, res)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first, filtered by type, status, category and date range.
// @Tags transactions
// @Produce json
// @Param type query string false "Transaction type" Enums(INCOME, EXPENSE, DONATION)
// @Param status query string false "Transaction status" Enums(DRAFT, POSTED, CANCELLED, REVERSED)
// @Param categoryID query string false "Category ID"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update. Setting status moves the transaction through its lifecycle: POSTED approves an existing draft, REVERSED posts the mirror entry, CANCELLED cancels it.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not permitted"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition or locked field"
// @Failure 500 {object} dto.ErrorResponse "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// cancelTransaction godoc
// @Summary Cancel a transaction
// @Description Cancels and reverses a posted transaction, or deletes one that never reached the journal.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "Cancelled transaction"
// @Success 204 "Deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not permitted"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Transaction already cancelled or reversed"
// @Failure 500 {object} dto.ErrorResponse "Failed to cancel transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.CancelTransaction(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "cancel transaction")
		return
	}
	if txn == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getTransactionJournalEntry godoc
// @Summary Get the journal entry posted for a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No journal entry for the transaction"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /transactions/{id}/journal-entry [get]
func (h *transactionHandler) getTransactionJournalEntry(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntryByTransactionID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newJournalHandler(js)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.POST("/:id/reverse", h.reverseJournalEntry)
	}
}

// listJournalEntries godoc
// @Summary List journal entries
// @Tags journal
// @Produce json
// @Param status query string false "Entry status" Enums(POSTED, REVERSED)
// @Param includeReversals query bool false "Include reversal entries" default(true)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getJournalEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce json
// @Param id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror entry, restores every affected balance and marks the owning transaction REVERSED.
// @Tags journal
// @Produce json
// @Param id path string true "Journal entry ID"
// @Success 201 {object} dto.JournalEntryResponse "The reversal entry"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Administrator or treasurer role required"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 409 {object} dto.ErrorResponse "Already reversed"
// @Failure 500 {object} dto.ErrorResponse "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "reverse journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry reversed",
		slog.String("original_id", c.Param("id")), slog.String("reversal_no", reversal.EntryNo))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/errors"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a note creation request.
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description" validate:"required"`
	IsPinned    bool   `json:"is_pinned"`
}

// UpdateNoteRequest represents a note update request.
type UpdateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description" validate:"required"`
	IsPinned    bool   `json:"is_pinned"`
}

// TrashNoteRequest toggles the trashed flag.
type TrashNoteRequest struct {
	IsTrashed *bool `json:"is_trashed" validate:"required"`
}

// ArchiveNoteRequest toggles the archived flag.
type ArchiveNoteRequest struct {
	IsArchived *bool `json:"is_archived" validate:"required"`
}

// PinNoteRequest toggles the pinned flag.
type PinNoteRequest struct {
	IsPinned *bool `json:"is_pinned" validate:"required"`
}

// Create godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Create(c.Request().Context(), userID, req.Title, req.Description, req.IsPinned)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "note created successfully",
		"note":    note,
	})
}

// List godoc
// @Summary List the authenticated user's notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param status query string false "Listing filter: all, trash or archive" Enums(all, trash, archive)
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	status := service.NoteStatus(c.QueryParam("status"))
	notes, err := h.noteService.List(c.Request().Context(), userID, status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notes)
}

// Get godoc
// @Summary Get a single note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	note, err := h.noteService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, note)
}

// Update godoc
// @Summary Update a note's title, description and pinned flag
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body UpdateNoteRequest true "Note data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Update(c.Request().Context(), id, req.Title, req.Description, req.IsPinned)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "note updated successfully",
		"note":    note,
	})
}

// Trash godoc
// @Summary Move a note in or out of the trash
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body TrashNoteRequest true "Trashed flag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id}/trash [put]
func (h *NoteHandler) Trash(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req TrashNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Trash(c.Request().Context(), id, *req.IsTrashed)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "note trashed successfully",
		"note":    note,
	})
}

// Archive godoc
// @Summary Archive or unarchive a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body ArchiveNoteRequest true "Archived flag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id}/archive [put]
func (h *NoteHandler) Archive(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ArchiveNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Archive(c.Request().Context(), id, *req.IsArchived)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "note archived successfully",
		"note":    note,
	})
}

// Pin godoc
// @Summary Pin or unpin a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body PinNoteRequest true "Pinned flag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id}/pin [put]
func (h *NoteHandler) Pin(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req PinNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Pin(c.Request().Context(), id, *req.IsPinned)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "note pinned successfully",
		"note":    note,
	})
}

// DeleteForever godoc
// @Summary Permanently delete a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteForever(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.noteService.DeleteForever(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "note deleted successfully",
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/errors"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/service"
)

// LabelHandler handles label endpoints.
type LabelHandler struct {
	labelService service.LabelService
}

// NewLabelHandler creates a new label handler.
func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// CreateLabelRequest represents a label creation request.
type CreateLabelRequest struct {
	NoteID    string `json:"note_id" validate:"required"`
	LabelName string `json:"label_name"`
}

// UpdateLabelRequest renames a label or soft-removes it via is_active=false.
type UpdateLabelRequest struct {
	LabelName string `json:"label_name"`
	IsActive  *bool  `json:"is_active" validate:"required"`
}

// Create godoc
// @Summary Attach a label to a note
// @Tags labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLabelRequest true "Label data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /labels [post]
func (h *LabelHandler) Create(c echo.Context) error {
	var req CreateLabelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	noteID, err := parseUUID(req.NoteID, "note_id")
	if err != nil {
		return err
	}

	label, err := h.labelService.Create(c.Request().Context(), noteID, req.LabelName)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "label created successfully",
		"label":   label,
	})
}

// ListByNote godoc
// @Summary List the labels of a note
// @Tags labels
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {array} model.Label
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id}/labels [get]
func (h *LabelHandler) ListByNote(c echo.Context) error {
	noteID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	labels, err := h.labelService.ListByNote(c.Request().Context(), noteID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, labels)
}

// Update godoc
// @Summary Rename a label or toggle its active flag
// @Tags labels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Label ID"
// @Param request body UpdateLabelRequest true "Label data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /labels/{id} [put]
func (h *LabelHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateLabelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	label, err := h.labelService.Update(c.Request().Context(), id, req.LabelName, *req.IsActive)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "label updated successfully",
		"label":   label,
	})
}

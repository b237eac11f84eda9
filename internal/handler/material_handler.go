package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recicla/internal/service"
)

// MaterialHandler handles the public material catalog endpoint.
type MaterialHandler struct {
	materialService service.MaterialService
}

// NewMaterialHandler creates a new material handler.
func NewMaterialHandler(materialService service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// ListMaterials godoc
// @Summary List the recyclable material catalog
// @Tags materials
// @Produce json
// @Success 200 {array} model.Material
// @Failure 500 {object} errors.ErrorResponse
// @Router /materials [get]
func (h *MaterialHandler) ListMaterials(c echo.Context) error {
	materials, err := h.materialService.ListMaterials(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, materials)
}

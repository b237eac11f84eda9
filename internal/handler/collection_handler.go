package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"recicla/internal/model"
	"recicla/internal/service"
)

// CollectionHandler handles the pickup lifecycle endpoints.
type CollectionHandler struct {
	collectionService service.CollectionService
	materialService   service.MaterialService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(collectionService service.CollectionService, materialService service.MaterialService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		materialService:   materialService,
	}
}

// MaterialLineRequest is one requested material line item.
type MaterialLineRequest struct {
	MaterialID uuid.UUID `json:"materialId" validate:"required"`
	Quantity   *string   `json:"quantity,omitempty"`
}

// ScheduleCollectionRequest represents a new pickup request.
type ScheduleCollectionRequest struct {
	Latitude   float64               `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64               `json:"longitude" validate:"min=-180,max=180"`
	PickupDate time.Time             `json:"pickupDate" validate:"required"`
	Materials  []MaterialLineRequest `json:"materials" validate:"required,min=1,dive"`
	Notes      *string               `json:"notes,omitempty"`
}

// UpdateCollectionStatusRequest represents a lifecycle change request.
type UpdateCollectionStatusRequest struct {
	Status        model.CollectionStatus `json:"status" validate:"required,oneof=SCHEDULED IN_ROUTE COMPLETED CANCELED"`
	CooperativeID *uuid.UUID             `json:"cooperativeId,omitempty"`
	WeightKg      *decimal.Decimal       `json:"weightKg,omitempty"`
}

// Schedule godoc
// @Summary Schedule a new pickup (citizens and companies)
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleCollectionRequest true "Pickup request"
// @Success 201 {object} model.Collection
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /collections [post]
func (h *CollectionHandler) Schedule(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req ScheduleCollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lines := make([]service.MaterialLineInput, 0, len(req.Materials))
	for _, m := range req.Materials {
		lines = append(lines, service.MaterialLineInput{MaterialID: m.MaterialID, Quantity: m.Quantity})
	}

	collection, err := h.collectionService.Schedule(c.Request().Context(), ident, service.ScheduleInput{
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PickupDate: req.PickupDate,
		Notes:      req.Notes,
		Materials:  lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, collection)
}

// List godoc
// @Summary List collections visible to the caller
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(SCHEDULED, IN_ROUTE, COMPLETED, CANCELED)
// @Param cooperativeId query string false "Cooperative filter (cooperatives only)"
// @Success 200 {array} model.Collection
// @Failure 400 {object} errors.ErrorResponse
// @Router /collections [get]
func (h *CollectionHandler) List(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var query service.ListQuery
	if raw := c.QueryParam("status"); raw != "" {
		status := model.CollectionStatus(raw)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		query.Status = &status
	}
	if raw := c.QueryParam("cooperativeId"); raw != "" {
		coopID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid cooperativeId filter")
		}
		query.CooperativeID = &coopID
	}

	collections, err := h.collectionService.List(c.Request().Context(), ident, query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collections)
}

// Get godoc
// @Summary Get one collection by id
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Collection ID"
// @Success 200 {object} model.Collection
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /collections/{id} [get]
func (h *CollectionHandler) Get(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid collection id")
	}

	collection, err := h.collectionService.Get(c.Request().Context(), ident, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collection)
}

// UpdateStatus godoc
// @Summary Move a collection through its lifecycle (cooperatives only)
// @Tags collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Collection ID"
// @Param request body UpdateCollectionStatusRequest true "Status change"
// @Success 200 {object} model.Collection
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /collections/{id}/status [put]
func (h *CollectionHandler) UpdateStatus(c echo.Context) error {
	ident, err := callerIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid collection id")
	}

	var req UpdateCollectionStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	collection, err := h.collectionService.UpdateStatus(c.Request().Context(), ident, id, service.StatusUpdateInput{
		Status:        req.Status,
		CooperativeID: req.CooperativeID,
		WeightKg:      req.WeightKg,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collection)
}

// SeedMaterials godoc
// @Summary Seed the fixed material catalog (cooperatives only)
// @Tags collections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /collections/seed-materials [post]
func (h *CollectionHandler) SeedMaterials(c echo.Context) error {
	created, err := h.materialService.SeedMaterials(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "materials seeded successfully",
		"created": created,
	})
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase, validator *validator.CustomValidator) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

// Create handles inventory item creation
// @Summary Create an inventory item
// @Description Create an inventory item with a unique SKU
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateInventoryItemRequest true "Create Inventory Item Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory [post]
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.inventoryUsecase.Create(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSKUAlreadyExists:
			response.Error(w, http.StatusConflict, "SKU already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create inventory item")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Inventory item created successfully", item)
}

// GetAll handles listing inventory items
// @Summary Get all inventory items
// @Description Get inventory items with pagination and an optional low-stock filter
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name or SKU"
// @Param low_stock query bool false "Only items at or below minimum stock"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /inventory [get]
func (h *InventoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := query.Get("search")
	lowStockOnly, _ := strconv.ParseBool(query.Get("low_stock"))
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	list, err := h.inventoryUsecase.GetAll(r.Context(), search, lowStockOnly, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get inventory items")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Inventory items retrieved successfully", list.Items, buildMeta(page, limit, list.Total))
}

// GetByID handles getting an inventory item by ID
// @Summary Get inventory item by ID
// @Description Get a single inventory item
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	item, err := h.inventoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to get inventory item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory item retrieved successfully", item)
}

// Update handles inventory item updates
// @Summary Update inventory item
// @Description Update item details; stock changes go through the adjust endpoint
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.UpdateInventoryItemRequest true "Update Inventory Item Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	var req dto.UpdateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.inventoryUsecase.Update(r.Context(), actorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to update inventory item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory item updated successfully", item)
}

// AdjustStock handles stock adjustments
// @Summary Adjust stock quantity
// @Description Apply a signed delta to the stock quantity and record a usage log
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.AdjustStockRequest true "Adjust Stock Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /inventory/{id}/adjust-stock [post]
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	var req dto.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.inventoryUsecase.AdjustStock(r.Context(), actorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		case usecase.ErrZeroDelta:
			response.Error(w, http.StatusBadRequest, "Delta must be non-zero", nil)
		case usecase.ErrInsufficientStock:
			response.Error(w, http.StatusUnprocessableEntity, "Adjustment would drive stock below zero", nil)
		default:
			response.InternalServerError(w, "Failed to adjust stock")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stock adjusted successfully", item)
}

// GetUsageLogs handles listing usage logs for an item
// @Summary Get usage logs
// @Description Get the stock movement history of an inventory item
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/{id}/usage-logs [get]
func (h *InventoryHandler) GetUsageLogs(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	list, err := h.inventoryUsecase.GetUsageLogs(r.Context(), id, page, limit)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to get usage logs")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Usage logs retrieved successfully", list.Logs, buildMeta(page, limit, list.Total))
}

// Delete handles inventory item deletion
// @Summary Delete inventory item
// @Description Delete an inventory item
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	if err := h.inventoryUsecase.Delete(r.Context(), actorID, id); err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to delete inventory item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory item deleted successfully", nil)
}

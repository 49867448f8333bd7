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

	"github.com/gorilla/mux"
)

type RoleHandler struct {
	roleUsecase usecase.RoleUsecase
	validator   *validator.CustomValidator
}

func NewRoleHandler(roleUsecase usecase.RoleUsecase, validator *validator.CustomValidator) *RoleHandler {
	return &RoleHandler{
		roleUsecase: roleUsecase,
		validator:   validator,
	}
}

// Create handles role creation
// @Summary Create a new role
// @Description Create a role with a permission list
// @Tags Roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRoleRequest true "Create Role Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roles [post]
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.Create(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleNameExists:
			response.Error(w, http.StatusConflict, "Role name already exists", nil)
		case usecase.ErrUnknownPermission:
			response.Error(w, http.StatusBadRequest, "Unknown permission in request", nil)
		default:
			response.InternalServerError(w, "Failed to create role")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Role created successfully", role)
}

// GetAll handles getting all roles
// @Summary Get all roles
// @Description Get all roles with pagination
// @Tags Roles
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by role name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /roles [get]
func (h *RoleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	list, err := h.roleUsecase.GetAll(r.Context(), search, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get roles")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Roles retrieved successfully", list.Roles, buildMeta(page, limit, list.Total))
}

// GetByID handles getting a role by ID
// @Summary Get role by ID
// @Description Get a single role including its permissions
// @Tags Roles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /roles/{id} [get]
func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	role, err := h.roleUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		default:
			response.InternalServerError(w, "Failed to get role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role retrieved successfully", role)
}

// Update handles role updates
// @Summary Update role
// @Description Update role name, description, or replace its permission list
// @Tags Roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param request body dto.UpdateRoleRequest true "Update Role Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	var req dto.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.Update(r.Context(), actorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrRoleNameExists:
			response.Error(w, http.StatusConflict, "Role name already exists", nil)
		case usecase.ErrUnknownPermission:
			response.Error(w, http.StatusBadRequest, "Unknown permission in request", nil)
		default:
			response.InternalServerError(w, "Failed to update role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role updated successfully", role)
}

// Delete handles role deletion
// @Summary Delete role
// @Description Delete a role; rejected while users are still assigned to it
// @Tags Roles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	if err := h.roleUsecase.Delete(r.Context(), actorID, id); err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrRoleHasUsers:
			response.Error(w, http.StatusConflict, "Role still has assigned users", nil)
		default:
			response.InternalServerError(w, "Failed to delete role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role deleted successfully", nil)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/service"
)

// ListUsers godoc
// @Summary      List users with their role and organization
// @Tags         users
// @Produce      json
// @Success      200 {array} entity.User
// @Security     BearerAuth
// @Router       /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.s.ListUsers(ctx)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, users)
}

// CreateUser godoc
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body service.UserInput true "User"
// @Success      201 {object} entity.User
// @Failure      400 {object} ResponseError "Invalid input"
// @Failure      409 {object} ResponseError "Email already taken"
// @Security     BearerAuth
// @Router       /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.UserInput

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	user, err := h.s.CreateUser(ctx, req)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary      Update a user account
// @Description  An empty password keeps the stored one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body service.UserInput true "User"
// @Success      200 {object} entity.User
// @Failure      404 {object} ResponseError "User not found"
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect user id")
		return
	}

	var req service.UserInput

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	user, err := h.s.UpdateUser(ctx, id, req)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user account
// @Tags         users
// @Param        id path string true "User ID"
// @Success      204
// @Failure      404 {object} ResponseError "User not found"
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect user id")
		return
	}

	err = h.s.DeleteUser(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type RoleRequest struct {
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	PermissionIDs []uuid.UUID `json:"permissionIds"`
}

// ListRoles godoc
// @Summary      List roles with their permissions
// @Tags         roles
// @Produce      json
// @Success      200 {array} entity.Role
// @Security     BearerAuth
// @Router       /roles [get]
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roles, err := h.s.ListRoles(ctx)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, roles)
}

// GetRole godoc
// @Summary      Fetch a single role with its permissions
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} entity.Role
// @Failure      404 {object} ResponseError "Role not found"
// @Security     BearerAuth
// @Router       /roles/{id} [get]
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect role id")
		return
	}

	role, err := h.s.RoleByID(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, role)
}

// CreateRole godoc
// @Summary      Create a role with an optional permission set
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request body RoleRequest true "Role"
// @Success      201 {object} entity.Role
// @Failure      409 {object} ResponseError "Role name already taken"
// @Security     BearerAuth
// @Router       /roles [post]
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RoleRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	role, err := h.s.CreateRole(ctx, req.Name, req.Description, req.PermissionIDs)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, role)
}

// UpdateRole godoc
// @Summary      Update a role
// @Description  Omitting permissionIds keeps the current permission set.
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        request body RoleRequest true "Role"
// @Success      200 {object} entity.Role
// @Failure      404 {object} ResponseError "Role not found"
// @Security     BearerAuth
// @Router       /roles/{id} [put]
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect role id")
		return
	}

	var req RoleRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	role, err := h.s.UpdateRole(ctx, id, req.Name, req.Description, req.PermissionIDs)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, role)
}

// DeleteRole godoc
// @Summary      Delete a role
// @Tags         roles
// @Param        id path string true "Role ID"
// @Success      204
// @Failure      409 {object} ResponseError "Role still assigned to users"
// @Security     BearerAuth
// @Router       /roles/{id} [delete]
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect role id")
		return
	}

	err = h.s.DeleteRole(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type PermissionRequest struct {
	Name string `json:"name"`
}

// ListPermissions godoc
// @Summary      List permissions
// @Tags         permissions
// @Produce      json
// @Success      200 {array} entity.Permission
// @Security     BearerAuth
// @Router       /permissions [get]
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	perms, err := h.s.ListPermissions(ctx)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, perms)
}

// GetPermission godoc
// @Summary      Fetch a single permission
// @Tags         permissions
// @Produce      json
// @Param        id path string true "Permission ID"
// @Success      200 {object} entity.Permission
// @Failure      404 {object} ResponseError "Permission not found"
// @Security     BearerAuth
// @Router       /permissions/{id} [get]
func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect permission id")
		return
	}

	perm, err := h.s.PermissionByID(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, perm)
}

// CreatePermission godoc
// @Summary      Create a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        request body PermissionRequest true "Permission"
// @Success      201 {object} entity.Permission
// @Failure      409 {object} ResponseError "Permission name already taken"
// @Security     BearerAuth
// @Router       /permissions [post]
func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PermissionRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	perm, err := h.s.CreatePermission(ctx, req.Name)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, perm)
}

// UpdatePermission godoc
// @Summary      Rename a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Permission ID"
// @Param        request body PermissionRequest true "Permission"
// @Success      200 {object} entity.Permission
// @Failure      404 {object} ResponseError "Permission not found"
// @Security     BearerAuth
// @Router       /permissions/{id} [put]
func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect permission id")
		return
	}

	var req PermissionRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	perm, err := h.s.UpdatePermission(ctx, id, req.Name)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, perm)
}

// DeletePermission godoc
// @Summary      Delete a permission
// @Tags         permissions
// @Param        id path string true "Permission ID"
// @Success      204
// @Failure      409 {object} ResponseError "Permission still attached to roles"
// @Security     BearerAuth
// @Router       /permissions/{id} [delete]
func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect permission id")
		return
	}

	err = h.s.DeletePermission(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/BlufyTeam/contacts/internal/entity"
)

type OrganizationRequest struct {
	Name string `json:"name"`
}

// ListOrganizations godoc
// @Summary      List organizations, newest first
// @Tags         organizations
// @Produce      json
// @Success      200 {array} entity.Organization
// @Router       /organizations [get]
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgs, err := h.s.ListOrganizations(ctx)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, orgs)
}

// CreateOrganization godoc
// @Summary      Create an organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body OrganizationRequest true "Organization"
// @Success      201 {object} entity.Organization
// @Failure      400 {object} ResponseError "Invalid input"
// @Failure      403 {object} ResponseError "Missing permission"
// @Security     BearerAuth
// @Router       /organizations [post]
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OrganizationRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	org, err := h.s.CreateOrganization(ctx, req.Name)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, org)
}

// UpdateOrganization godoc
// @Summary      Rename an organization
// @Tags         organizations
// @Accept       json
// @Produce     json
// @Param        id path string true "Organization ID"
// @Param        request body OrganizationRequest true "Organization"
// @Success      200 {object} entity.Organization
// @Failure      404 {object} ResponseError "Organization not found"
// @Security     BearerAuth
// @Router       /organizations/{id} [put]
func (h *Handler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect organization id")
		return
	}

	var req OrganizationRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	org, err := h.s.UpdateOrganization(ctx, id, req.Name)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, org)
}

// DeleteOrganization godoc
// @Summary      Delete an organization without members
// @Tags         organizations
// @Param        id path string true "Organization ID"
// @Success      204
// @Failure      409 {object} ResponseError "Organization still referenced"
// @Security     BearerAuth
// @Router       /organizations/{id} [delete]
func (h *Handler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect organization id")
		return
	}

	err = h.s.DeleteOrganization(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func contactsFilterFromQuery(r *http.Request) (entity.ContactsFilter, error) {
	var filter entity.ContactsFilter

	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			return entity.ContactsFilter{}, entity.ErrIncorrectRequestBody
		}

		filter.OrganizationID = &id
	}

	if raw := r.URL.Query().Get("sort_by"); raw != "" {
		filter.SortBy = entity.ContactsSortBy(raw)
	}

	if raw := r.URL.Query().Get("order_by"); raw != "" {
		filter.OrderBy = entity.OrderBy(raw)
	}

	return filter, nil
}

// ListContacts godoc
// @Summary      List contacts with optional organization filter and sorting
// @Tags         contacts
// @Produce      json
// @Param        organization_id query string false "Filter by organization"
// @Param        sort_by query string false "full_name, email or created_at"
// @Param        order_by query string false "asc or desc"
// @Success      200 {array} entity.Contact
// @Failure      400 {object} ResponseError "Invalid filter"
// @Router       /contacts [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := contactsFilterFromQuery(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect contacts filter")
		return
	}

	contacts, err := h.s.ListContacts(ctx, filter)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, contacts)
}

// CreateContact godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body entity.Contact true "Contact"
// @Success      201 {object} entity.Contact
// @Failure      400 {object} ResponseError "Invalid input"
// @Failure      403 {object} ResponseError "Missing permission"
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req entity.Contact

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	contact, err := h.s.CreateContact(ctx, req)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, contact)
}

// UpdateContact godoc
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        request body entity.Contact true "Contact"
// @Success      200 {object} entity.Contact
// @Failure      404 {object} ResponseError "Contact not found"
// @Security     BearerAuth
// @Router       /contacts/{id} [put]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect contact id")
		return
	}

	var req entity.Contact

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	req.ID = id

	contact, err := h.s.UpdateContact(ctx, req)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary      Delete a contact
// @Tags         contacts
// @Param        id path string true "Contact ID"
// @Success      204
// @Failure      404 {object} ResponseError "Contact not found"
// @Security     BearerAuth
// @Router       /contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect contact id")
		return
	}

	err = h.s.DeleteContact(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

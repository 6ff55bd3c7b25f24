package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/BlufyTeam/contacts/internal/entity"
)

type DocumentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	FileURL     string  `json:"fileUrl"`
	FileType    string  `json:"fileType"`
}

// ListDocuments godoc
// @Summary      List uploaded documents, newest first
// @Tags         documents
// @Produce      json
// @Success      200 {array} entity.Document
// @Router       /documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.s.ListDocuments(ctx)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, docs)
}

// CreateDocument godoc
// @Summary      Register an uploaded file as a document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body DocumentRequest true "Document"
// @Success      201 {object} entity.Document
// @Failure      400 {object} ResponseError "File URL does not point at a stored upload"
// @Security     BearerAuth
// @Router       /documents [post]
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DocumentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	doc, err := h.s.CreateDocument(ctx, req.Name, req.Description, req.FileURL, req.FileType)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, doc)
}

// DeleteDocument godoc
// @Summary      Delete a document and its stored file
// @Tags         documents
// @Param        id path string true "Document ID"
// @Success      204
// @Failure      404 {object} ResponseError "Document not found"
// @Security     BearerAuth
// @Router       /documents/{id} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idFromURL(r, "id")
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect document id")
		return
	}

	err = h.s.DeleteDocument(ctx, id)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// filePart walks the multipart stream until the "file" field and returns it
// without buffering the payload in memory.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, entity.ErrNoFile
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, entity.ErrNoFile
		}

		if err != nil {
			return nil, entity.ErrIncorrectRequestBody
		}

		if part.FormName() == "file" {
			return part, nil
		}
	}
}

// Upload godoc
// @Summary      Store a file and return its public URL
// @Description  Accepts a single multipart field named "file", capped at 20 MiB.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to store"
// @Success      200 {object} entity.UploadedFile
// @Failure      400 {object} ResponseError "No file uploaded"
// @Failure      413 {object} ResponseError "File exceeds the size limit"
// @Router       /upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	part, err := filePart(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "No file uploaded")
		return
	}
	defer part.Close()

	file, err := h.s.Upload(ctx, part.FileName(), part.Header.Get("Content-Type"), part)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, file)
}

// ExportContacts godoc
// @Summary      Download every contact as an xlsx workbook
// @Tags         contacts
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /export-contacts [get]
func (h *Handler) ExportContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workbook, err := h.s.ExportContacts(ctx)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.xlsx"`)

	_, err = w.Write(workbook)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "Failed to write workbook")
	}
}

// ImportContacts godoc
// @Summary      Import contacts from an uploaded xlsx workbook
// @Description  Rows that fail validation are skipped, the rest are stored.
// @Tags         contacts
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Workbook to import"
// @Success      200 {object} service.ImportResult
// @Failure      400 {object} ResponseError "No file uploaded"
// @Failure      403 {object} ResponseError "Missing permission"
// @Security     BearerAuth
// @Router       /import-contacts [post]
func (h *Handler) ImportContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	part, err := filePart(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "No file uploaded")
		return
	}
	defer part.Close()

	result, err := h.s.ImportContacts(ctx, part)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, result)
}

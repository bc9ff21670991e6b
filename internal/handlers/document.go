package handlers

import (
	"net/http"
	"strconv"

	"clientdesk/internal/auth"
	"clientdesk/internal/models"
	"clientdesk/internal/policy"
	"clientdesk/internal/services"
	"clientdesk/internal/view"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxUploadSize bounds multipart parsing for document uploads.
const maxUploadSize = 32 << 20

// DocumentHandler serves document upload and deletion from the client
// profile, plus the standalone upload form.
type DocumentHandler struct {
	db      *gorm.DB
	gate    *policy.AuthGate
	docs    *services.DocumentService
	clients *ClientHandler
	log     *logrus.Logger
}

func NewDocumentHandler(db *gorm.DB, gate *policy.AuthGate, docs *services.DocumentService, clients *ClientHandler, log *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{db: db, gate: gate, docs: docs, clients: clients, log: log}
}

// Upload handles the client-profile upload modal. This is the one flow
// whose failure message is shown to the user.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")
	id64, err := strconv.ParseUint(clientID, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	employeeID, _ := auth.EmployeeIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.renderUploadError(w, r, clientID, "Invalid upload request")
		return
	}

	in := services.UploadInput{
		ClientID:     uint(id64),
		EmployeeID:   employeeID,
		DocumentType: r.FormValue("document_type"),
		Description:  r.FormValue("description"),
		// Profile uploads key the object by the uploading employee.
		KeyOwner: employeeID,
	}
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		in.File = file
		in.FileName = header.Filename
	}

	if _, err := h.docs.Upload(r.Context(), in); err != nil {
		h.log.WithError(err).WithField("client_id", clientID).Error("upload document")
		h.renderUploadError(w, r, clientID, err.Error())
		return
	}

	http.Redirect(w, r, "/clients/"+clientID, http.StatusSeeOther)
}

func (h *DocumentHandler) renderUploadError(w http.ResponseWriter, r *http.Request, clientID, msg string) {
	h.clients.renderProfile(w, r, clientID, map[string]any{
		"UploadError":     msg,
		"ShowUploadModal": true,
	})
}

// Delete removes a document. The service guarantees the row survives a
// failed object removal; either way the list is re-read on redirect and
// no banner is shown.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	id64, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var doc models.Document
	if err := h.db.First(&doc, uint(id64)).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	clientID := strconv.FormatUint(uint64(doc.ClientID), 10)

	if err := h.docs.Delete(r.Context(), doc.ID); err != nil {
		h.log.WithError(err).WithField("document_id", doc.ID).Error("delete document")
	}
	http.Redirect(w, r, "/clients/"+clientID, http.StatusSeeOther)
}

// UploadForm is the standalone upload page: a client dropdown limited
// to active clients, document metadata and the file.
func (h *DocumentHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderUploadForm(w, r, map[string]any{
			"Success": r.URL.Query().Get("uploaded") == "1",
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.renderUploadForm(w, r, map[string]any{"Error": "Invalid upload request"})
		return
	}

	clientID64, err := strconv.ParseUint(r.FormValue("client_id"), 10, 64)
	if err != nil {
		h.renderUploadForm(w, r, map[string]any{"Error": "Please choose a client"})
		return
	}

	employeeID := h.attributedEmployee(r)

	in := services.UploadInput{
		ClientID:     uint(clientID64),
		EmployeeID:   employeeID,
		DocumentType: r.FormValue("document_type"),
		Description:  r.FormValue("description"),
		// The standalone form keys the object by the client.
		KeyOwner: uint(clientID64),
	}
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		in.File = file
		in.FileName = header.Filename
	}

	if _, err := h.docs.Upload(r.Context(), in); err != nil {
		h.log.WithError(err).WithField("client_id", clientID64).Error("upload document (standalone form)")
		h.renderUploadForm(w, r, map[string]any{
			"Error": err.Error(),
			"Form": map[string]string{
				"ClientID":     r.FormValue("client_id"),
				"DocumentType": r.FormValue("document_type"),
				"Description":  r.FormValue("description"),
				"EmployeeID":   r.FormValue("employee_id"),
			},
		})
		return
	}

	// Success clears the form.
	http.Redirect(w, r, "/documents/upload?uploaded=1", http.StatusSeeOther)
}

// attributedEmployee resolves who the upload is recorded for: the
// session employee, unless an admin filled the override field.
func (h *DocumentHandler) attributedEmployee(r *http.Request) uint {
	employeeID, _ := auth.EmployeeIDFromContext(r.Context())
	override := r.FormValue("employee_id")
	if override == "" || !h.gate.IsAdmin(r.Context()) {
		return employeeID
	}
	id64, err := strconv.ParseUint(override, 10, 64)
	if err != nil {
		return employeeID
	}
	return uint(id64)
}

func (h *DocumentHandler) renderUploadForm(w http.ResponseWriter, r *http.Request, extra map[string]any) {
	var clients []models.Client
	if err := h.db.Where("status = ?", models.ClientStatusActive).
		Order("name").Find(&clients).Error; err != nil {
		h.log.WithError(err).Error("load eligible clients")
	}
	data := map[string]any{
		"Clients":       clients,
		"DocumentTypes": models.DocumentTypes,
		"IsAdmin":       h.gate.IsAdmin(r.Context()),
		"Form":          map[string]string{},
	}
	for k, v := range extra {
		data[k] = v
	}
	if err := view.Render(w, r, "documents/upload.html", data); err != nil {
		h.log.WithError(err).Error("render upload form")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

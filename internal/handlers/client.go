package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"clientdesk/internal/models"
	"clientdesk/internal/policy"
	"clientdesk/internal/validation"
	"clientdesk/internal/view"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ClientHandler serves the client list and the client profile view,
// including the status transition to "completed".
type ClientHandler struct {
	db         *gorm.DB
	gate       *policy.AuthGate
	assignment *policy.AssignmentChecker
	log        *logrus.Logger
}

func NewClientHandler(db *gorm.DB, gate *policy.AuthGate, assignment *policy.AssignmentChecker, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{db: db, gate: gate, assignment: assignment, log: log}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit := 20
	offset := (page - 1) * limit

	var clients []models.Client
	var total int64

	q := h.db.Model(&models.Client{})
	if query != "" {
		// LOWER() keeps the match case-insensitive on postgres too.
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
	}
	q.Count(&total)
	q.Order("name").Limit(limit).Offset(offset).Find(&clients)

	view.Render(w, r, "clients/index.html", map[string]any{
		"Clients": clients,
		"Query":   query,
		"Page":    page,
		"Total":   total,
		"Limit":   limit,
	})
}

// clientBundle is everything the profile page shows for one client.
type clientBundle struct {
	Client     models.Client
	Contacts   []models.ContactPerson
	Documents  []models.Document
	Quotations []models.Quotation
	Assets     []models.Asset
	IsAssigned bool
}

// loadBundle fetches the client and its collections, newest first.
// Collection load failures are logged and leave that list empty; only
// a missing client aborts the page.
func (h *ClientHandler) loadBundle(r *http.Request, id string) (*clientBundle, error) {
	var b clientBundle
	if err := h.db.First(&b.Client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	ctx := r.Context()

	if err := h.db.Where("client_id = ?", b.Client.ID).
		Order("created_at DESC").Find(&b.Contacts).Error; err != nil {
		h.log.WithError(err).Error("load contacts")
	}
	if err := h.db.Preload("Employee").Where("client_id = ?", b.Client.ID).
		Order("created_at DESC").Find(&b.Documents).Error; err != nil {
		h.log.WithError(err).Error("load documents")
	}
	if err := h.gate.ScopeQuotations(ctx, h.db.Where("client_id = ?", b.Client.ID)).
		Order("created_at DESC").Find(&b.Quotations).Error; err != nil {
		h.log.WithError(err).Error("load quotations")
	}
	if err := h.db.Where("client_id = ?", b.Client.ID).
		Order("name").Find(&b.Assets).Error; err != nil {
		h.log.WithError(err).Error("load assets")
	}
	b.IsAssigned = h.assignment.IsAssigned(ctx, b.Client.ID)
	return &b, nil
}

func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, r.PathValue("id"), nil)
}

// renderProfile renders the profile page; extra carries form state when
// a contact modal is re-shown after a failed submit.
func (h *ClientHandler) renderProfile(w http.ResponseWriter, r *http.Request, id string, extra map[string]any) {
	b, err := h.loadBundle(r, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data := map[string]any{
		"Client":        b.Client,
		"Contacts":      b.Contacts,
		"Documents":     b.Documents,
		"Quotations":    b.Quotations,
		"Assets":        b.Assets,
		"IsAssigned":    b.IsAssigned,
		"DocumentTypes": models.DocumentTypes,
		// Defaults for the modal templates; overridden after a failed submit.
		"ContactForm":   models.ContactPerson{},
		"ContactErrors": validation.Violations{},
	}
	for k, v := range extra {
		data[k] = v
	}
	if err := view.Render(w, r, "clients/view.html", data); err != nil {
		h.log.WithError(err).Error("render client profile")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// Complete transitions the client's status to "completed". Failures are
// logged; either way the browser is sent back to the profile, which
// re-reads the row.
func (h *ClientHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.Model(&client).Update("status", models.ClientStatusCompleted).Error; err != nil {
		h.log.WithError(err).WithField("client_id", client.ID).Error("mark client completed")
	}
	http.Redirect(w, r, "/clients/"+id, http.StatusSeeOther)
}

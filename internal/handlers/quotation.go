package handlers

import (
	"net/http"

	"clientdesk/internal/models"
	"clientdesk/internal/policy"
	"clientdesk/internal/view"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// QuotationHandler lists quotations across clients. The role-dependent
// status filter is applied at query level by the gate.
type QuotationHandler struct {
	db   *gorm.DB
	gate *policy.AuthGate
	log  *logrus.Logger
}

func NewQuotationHandler(db *gorm.DB, gate *policy.AuthGate, log *logrus.Logger) *QuotationHandler {
	return &QuotationHandler{db: db, gate: gate, log: log}
}

func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	var quotations []models.Quotation
	q := h.gate.ScopeQuotations(r.Context(), h.db.Preload("Client"))
	if err := q.Order("created_at DESC").Find(&quotations).Error; err != nil {
		h.log.WithError(err).Error("load quotations")
	}

	if err := view.Render(w, r, "quotations/index.html", map[string]any{
		"Quotations": quotations,
	}); err != nil {
		h.log.WithError(err).Error("render quotations")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

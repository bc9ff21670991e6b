package handlers

import (
	"net/http"

	"clientdesk/internal/auth"
	"clientdesk/internal/models"
	"clientdesk/internal/view"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DashboardHandler renders the landing page after login.
type DashboardHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewDashboardHandler(db *gorm.DB, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{db: db, log: log}
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := auth.EmployeeIDFromContext(r.Context())

	var employee models.Employee
	h.db.Preload("Role").First(&employee, employeeID)

	var clientCount, contactCount, documentCount int64
	h.db.Model(&models.Client{}).Count(&clientCount)
	h.db.Model(&models.ContactPerson{}).Count(&contactCount)
	h.db.Model(&models.Document{}).Count(&documentCount)

	var recentDocuments []models.Document
	h.db.Preload("Employee").Order("created_at DESC").Limit(5).Find(&recentDocuments)

	if err := view.Render(w, r, "dashboard.html", map[string]any{
		"Employee": employee,
		"Stats": map[string]any{
			"Clients":   clientCount,
			"Contacts":  contactCount,
			"Documents": documentCount,
		},
		"RecentDocuments": recentDocuments,
	}); err != nil {
		h.log.WithError(err).Error("render dashboard")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

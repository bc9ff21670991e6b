package handlers

import (
	"net/http"
	"strconv"

	"clientdesk/internal/models"
	"clientdesk/internal/validation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContactHandler creates and updates contact persons. Failures keep the
// modal open with the entered values; the error itself is only logged.
type ContactHandler struct {
	db      *gorm.DB
	clients *ClientHandler
	log     *logrus.Logger
}

func NewContactHandler(db *gorm.DB, clients *ClientHandler, log *logrus.Logger) *ContactHandler {
	return &ContactHandler{db: db, clients: clients, log: log}
}

func contactFromForm(r *http.Request) models.ContactPerson {
	return models.ContactPerson{
		Name:     r.FormValue("name"),
		Position: r.FormValue("position"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
	}
}

func validateContact(c models.ContactPerson) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", c.Name, v)
	validation.Email("email", c.Email, v)
	return v
}

// Create adds a contact to the client and reloads the profile bundle.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")
	id64, err := strconv.ParseUint(clientID, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	contact := contactFromForm(r)
	contact.ClientID = uint(id64)

	if v := validateContact(contact); !v.Empty() {
		h.clients.renderProfile(w, r, clientID, map[string]any{
			"ContactForm":      contact,
			"ContactErrors":    v,
			"ShowContactModal": true,
		})
		return
	}

	if err := h.db.Create(&contact).Error; err != nil {
		h.log.WithError(err).WithField("client_id", clientID).Error("add contact")
		h.clients.renderProfile(w, r, clientID, map[string]any{
			"ContactForm":      contact,
			"ShowContactModal": true,
		})
		return
	}

	http.Redirect(w, r, "/clients/"+clientID, http.StatusSeeOther)
}

// Update edits an existing contact, then sends the browser back to the
// owning client's profile.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var contact models.ContactPerson
	if err := h.db.First(&contact, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	clientID := strconv.FormatUint(uint64(contact.ClientID), 10)

	contact.Name = r.FormValue("name")
	contact.Position = r.FormValue("position")
	contact.Email = r.FormValue("email")
	contact.Phone = r.FormValue("phone")

	if v := validateContact(contact); !v.Empty() {
		h.clients.renderProfile(w, r, clientID, map[string]any{
			"ContactForm":      contact,
			"ContactErrors":    v,
			"ShowContactModal": true,
		})
		return
	}

	if err := h.db.Save(&contact).Error; err != nil {
		h.log.WithError(err).WithField("contact_id", contact.ID).Error("update contact")
		h.clients.renderProfile(w, r, clientID, map[string]any{
			"ContactForm":      contact,
			"ShowContactModal": true,
		})
		return
	}

	http.Redirect(w, r, "/clients/"+clientID, http.StatusSeeOther)
}

package handlers

import (
	"net/http"

	"clientdesk/internal/auth"
	"clientdesk/internal/models"
	"clientdesk/internal/view"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves login and logout. There is no self-signup; the
// console is an internal tool and accounts are provisioned by admins.
type AuthHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{db: db, log: log}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if err := view.Render(w, r, "login.html", map[string]any{}); err != nil {
			http.Error(w, "Failed to render template", http.StatusInternalServerError)
		}
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	var employee models.Employee
	if err := h.db.Where("email = ?", email).First(&employee).Error; err != nil {
		view.Render(w, r, "login.html", map[string]any{"Error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		view.Render(w, r, "login.html", map[string]any{"Error": "Invalid email or password"})
		return
	}

	auth.CreateSession(w, employee.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie and always lands on the login page,
// regardless of prior state. The layout's logout script wipes browser
// local and session storage before this request is made.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

package db

import (
	"fmt"
	"os"

	"clientdesk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// permissionDef is one row of the permission catalog.
type permissionDef struct {
	ResourceType string
	Action       string
	Description  string
}

// The permission catalog. Role-string conditionals from the old console
// are expressed here as explicit capabilities.
var permissionCatalog = []permissionDef{
	// Superadmin wildcard
	{"*", "*", "Full system access"},
	// Clients
	{"client", "list", "List and search clients"},
	{"client", "view", "View client profiles"},
	{"client", "complete", "Mark clients as completed"},
	{"client", "act_on_any", "Act on any client without an assignment"},
	// Contact persons
	{"contact", "create", "Add contact persons"},
	{"contact", "update", "Edit contact persons"},
	// Documents
	{"document", "create", "Upload documents"},
	{"document", "delete", "Delete documents"},
	// Quotations
	{"quotation", "list", "List quotations (approved only)"},
	{"quotation", "view_all", "List quotations in any status"},
	// Employee administration (admin wildcard only)
	{"employee", "list", "List employees and their roles"},
	{"employee", "update", "Reassign employee roles"},
}

// roleGrants maps each seeded role to its permission codes.
var roleGrants = map[string][]string{
	"admin": {"*:*"},
	"head": {
		"client:list", "client:view",
		"contact:create",
		"document:create",
		"quotation:list", "quotation:view_all",
	},
	"finance.employee": {
		"client:list", "client:view", "client:complete", "client:act_on_any",
		"contact:create", "contact:update",
		"document:create", "document:delete",
		"quotation:list",
	},
	"employee": {
		"client:list", "client:view",
		"contact:create",
		"document:create",
		"quotation:list",
	},
}

// Seed creates the permission catalog, the four console roles and, when
// no employee exists yet, a bootstrap admin account. Idempotent.
func Seed(conn *gorm.DB) error {
	byCode := make(map[string]models.Permission, len(permissionCatalog))
	for _, def := range permissionCatalog {
		perm := models.Permission{
			ResourceType: def.ResourceType,
			Action:       def.Action,
			Description:  def.Description,
		}
		result := conn.Where("resource_type = ? AND action = ?", def.ResourceType, def.Action).
			Attrs(models.Permission{Description: def.Description}).
			FirstOrCreate(&perm)
		if result.Error != nil {
			return fmt.Errorf("seed permission %s:%s: %w", def.ResourceType, def.Action, result.Error)
		}
		byCode[perm.Code()] = perm
	}

	for name, codes := range roleGrants {
		role := models.Role{Name: name, IsSystem: true}
		if err := conn.Where("name = ?", name).
			Attrs(models.Role{IsSystem: true}).
			FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		perms := make([]models.Permission, 0, len(codes))
		for _, code := range codes {
			p, ok := byCode[code]
			if !ok {
				return fmt.Errorf("role %s references unknown permission %s", name, code)
			}
			perms = append(perms, p)
		}
		if err := conn.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return fmt.Errorf("grant permissions to %s: %w", name, err)
		}
	}

	return seedAdmin(conn)
}

// seedAdmin creates the bootstrap admin when the employee table is empty.
// There is no self-signup; accounts are provisioned here or by an admin.
func seedAdmin(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var admin models.Role
	if err := conn.Where("name = ?", "admin").First(&admin).Error; err != nil {
		return fmt.Errorf("admin role missing: %w", err)
	}
	employee := models.Employee{
		Email:    "admin@clientdesk.local",
		Name:     "Administrator",
		Password: string(hash),
		RoleID:   &admin.ID,
	}
	if err := conn.Create(&employee).Error; err != nil {
		return fmt.Errorf("seed admin employee: %w", err)
	}
	return nil
}

package policy

import (
	"context"

	"clientdesk/internal/models"

	"gorm.io/gorm"
)

// ScopeQuotations applies the role-dependent quotation filter: roles
// with quotation:view_all (admin, head) query unconstrained; every
// other role only ever sees approved quotations.
func (ag *AuthGate) ScopeQuotations(ctx context.Context, q *gorm.DB) *gorm.DB {
	if ag.CanRole(ctx, ActionViewAll, "quotation") {
		return q
	}
	return q.Where("status = ?", models.QuotationStatusApproved)
}

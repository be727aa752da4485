package permission

import "context"

type InvoiceStore interface {
	InvoiceExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
}

func NewInvoicePermission(invoices InvoiceStore, buildings *BuildingPermission) *InvoicePermission {
	return &InvoicePermission{invoices: invoices, buildings: buildings}
}

type InvoicePermission struct {
	invoices  InvoiceStore
	buildings *BuildingPermission
}

func (p *InvoicePermission) CanAccessInvoice(ctx context.Context, invoiceID uint64) (bool, error) {
	principal, ok := resolvePrincipal(ctx)
	if !ok {
		return false, nil
	}

	if principal.HasRole(AdminRole) {
		return true, nil
	}

	return p.invoices.InvoiceExistsForManager(ctx, invoiceID, principal.UserID())
}

func (p *InvoicePermission) CanAccessBuildingInvoices(ctx context.Context, buildingID uint64) (bool, error) {
	return p.buildings.CanAccessBuilding(ctx, buildingID)
}

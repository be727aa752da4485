package permission

import "context"

type TenantStore interface {
	TenantExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
}

func NewTenantPermission(tenants TenantStore, rooms *RoomPermission) *TenantPermission {
	return &TenantPermission{tenants: tenants, rooms: rooms}
}

type TenantPermission struct {
	tenants TenantStore
	rooms   *RoomPermission
}

func (p *TenantPermission) CanAccessTenant(ctx context.Context, tenantID uint64) (bool, error) {
	principal, ok := resolvePrincipal(ctx)
	if !ok {
		return false, nil
	}

	if principal.HasRole(AdminRole) {
		return true, nil
	}

	return p.tenants.TenantExistsForManager(ctx, tenantID, principal.UserID())
}

func (p *TenantPermission) CanAccessRoomTenants(ctx context.Context, roomID uint64) (bool, error) {
	return p.rooms.CanAccessRoom(ctx, roomID)
}

func (p *TenantPermission) CanAccessBuildingTenants(ctx context.Context, buildingID uint64) (bool, error) {
	return p.rooms.CanAccessBuildingRooms(ctx, buildingID)
}

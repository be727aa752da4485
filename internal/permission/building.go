package permission

import "context"

type BuildingStore interface {
	BuildingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
}

func NewBuildingPermission(buildings BuildingStore) *BuildingPermission {
	return &BuildingPermission{buildings: buildings}
}

type BuildingPermission struct {
	buildings BuildingStore
}

func (p *BuildingPermission) CanAccessBuilding(ctx context.Context, buildingID uint64) (bool, error) {
	principal, ok := resolvePrincipal(ctx)
	if !ok {
		return false, nil
	}

	if principal.HasRole(AdminRole) {
		return true, nil
	}

	return p.buildings.BuildingExistsForManager(ctx, buildingID, principal.UserID())
}

package permission

import "context"

type RoomStore interface {
	RoomExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
	BuildingRoomsExistForManager(ctx context.Context, buildingID uint64, managerID string) (bool, error)
}

func NewRoomPermission(rooms RoomStore) *RoomPermission {
	return &RoomPermission{rooms: rooms}
}

type RoomPermission struct {
	rooms RoomStore
}

func (p *RoomPermission) CanAccessRoom(ctx context.Context, roomID uint64) (bool, error) {
	principal, ok := resolvePrincipal(ctx)
	if !ok {
		return false, nil
	}

	if principal.HasRole(AdminRole) {
		return true, nil
	}

	return p.rooms.RoomExistsForManager(ctx, roomID, principal.UserID())
}

// CanAccessBuildingRooms answers whether the principal manages any room of
// the given building.
func (p *RoomPermission) CanAccessBuildingRooms(ctx context.Context, buildingID uint64) (bool, error) {
	principal, ok := resolvePrincipal(ctx)
	if !ok {
		return false, nil
	}

	if principal.HasRole(AdminRole) {
		return true, nil
	}

	return p.rooms.BuildingRoomsExistForManager(ctx, buildingID, principal.UserID())
}

package permission

import "context"

type UtilityReadingStore interface {
	UtilityReadingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
}

func NewUtilityReadingPermission(readings UtilityReadingStore, rooms *RoomPermission) *UtilityReadingPermission {
	return &UtilityReadingPermission{readings: readings, rooms: rooms}
}

type UtilityReadingPermission struct {
	readings UtilityReadingStore
	rooms    *RoomPermission
}

func (p *UtilityReadingPermission) CanAccessUtilityReading(ctx context.Context, readingID uint64) (bool, error) {
	principal, ok := resolvePrincipal(ctx)
	if !ok {
		return false, nil
	}

	if principal.HasRole(AdminRole) {
		return true, nil
	}

	return p.readings.UtilityReadingExistsForManager(ctx, readingID, principal.UserID())
}

func (p *UtilityReadingPermission) CanAccessRoomUtilityReadings(ctx context.Context, roomID uint64) (bool, error) {
	return p.rooms.CanAccessRoom(ctx, roomID)
}

func (p *UtilityReadingPermission) CanAccessBuildingUtilityReadings(ctx context.Context, buildingID uint64) (bool, error) {
	return p.rooms.CanAccessBuildingRooms(ctx, buildingID)
}

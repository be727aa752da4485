package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomVacant      RoomStatus = "VACANT"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

type Room struct {
	ID uint64 `gorm:"primary_key;autoIncrement:false"`

	BuildingID uint64 `gorm:"not null;index"`
	Building   Building

	RoomNo string `gorm:"type:varchar(20);not null"`
	Price  int

	Status RoomStatus `gorm:"type:varchar(20);not null"`
}

func (r *repository) SaveRoom(ctx context.Context, room *Room) error {
	tx := r.withContext(ctx).Save(room)
	return tx.Error
}

func (r *repository) GetRoom(ctx context.Context, id uint64) (*Room, error) {
	var m Room
	tx := r.withContext(ctx).Preload("Building").First(&m, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &m, nil
}

func (r *repository) ListRoomsByBuilding(ctx context.Context, buildingID uint64) ([]Room, error) {
	var rooms = []Room{}
	tx := r.withContext(ctx).Where("building_id = ?", buildingID).Order("room_no").Find(&rooms)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return rooms, nil
}

func (r *repository) DeleteRoom(ctx context.Context, id uint64) (bool, error) {
	tx := r.withContext(ctx).Delete(&Room{}, "id = ?", id)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// RoomExistsForManager walks the room -> building ownership chain in a single
// existence query.
func (r *repository) RoomExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Room{}).
		Joins("JOIN buildings ON buildings.id = rooms.building_id").
		Where("rooms.id = ? AND buildings.manager_id = ?", id, managerID).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

func (r *repository) BuildingRoomsExistForManager(ctx context.Context, buildingID uint64, managerID string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Room{}).
		Joins("JOIN buildings ON buildings.id = rooms.building_id").
		Where("rooms.building_id = ? AND buildings.manager_id = ?", buildingID, managerID).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

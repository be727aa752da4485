package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UtilityReading struct {
	ID uint64 `gorm:"primary_key;autoIncrement:false"`

	RoomID uint64 `gorm:"not null;index"`
	Room   Room

	Month string `gorm:"type:varchar(7);not null;index"`

	ElectricIndex *int
	WaterIndex    *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *repository) SaveUtilityReading(ctx context.Context, reading *UtilityReading) error {
	tx := r.withContext(ctx).Save(reading)
	return tx.Error
}

func (r *repository) GetUtilityReading(ctx context.Context, id uint64) (*UtilityReading, error) {
	var u UtilityReading
	tx := r.withContext(ctx).Preload("Room").First(&u, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &u, nil
}

func (r *repository) GetUtilityReadingByRoomAndMonth(ctx context.Context, roomID uint64, month string) (*UtilityReading, error) {
	var u UtilityReading
	tx := r.withContext(ctx).First(&u, "room_id = ? AND month = ?", roomID, month)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &u, nil
}

func (r *repository) ListUtilityReadingsByRoom(ctx context.Context, roomID uint64) ([]UtilityReading, error) {
	var readings = []UtilityReading{}
	tx := r.withContext(ctx).Where("room_id = ?", roomID).Order("month desc").Find(&readings)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return readings, nil
}

func (r *repository) ListUtilityReadingsByBuildingAndMonth(ctx context.Context, buildingID uint64, month string) ([]UtilityReading, error) {
	var readings = []UtilityReading{}
	tx := r.withContext(ctx).
		Joins("JOIN rooms ON rooms.id = utility_readings.room_id").
		Where("rooms.building_id = ? AND utility_readings.month = ?", buildingID, month).
		Find(&readings)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return readings, nil
}

// UtilityReadingExistsForManager walks reading -> room -> building to the
// managing identity in a single existence query.
func (r *repository) UtilityReadingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&UtilityReading{}).
		Joins("JOIN rooms ON rooms.id = utility_readings.room_id").
		Joins("JOIN buildings ON buildings.id = rooms.building_id").
		Where("utility_readings.id = ? AND buildings.manager_id = ?", id, managerID).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type WaterCalcMethod string

const (
	WaterPerCapita WaterCalcMethod = "PER_CAPITA"
	WaterByMeter   WaterCalcMethod = "BY_METER"
)

type Building struct {
	ID   uint64 `gorm:"primary_key;autoIncrement:false"`
	Name string `gorm:"type:varchar(100);not null"`

	ManagerID string `gorm:"type:varchar(50);not null;index"`

	OwnerName  string `gorm:"type:varchar(100)"`
	OwnerPhone string `gorm:"type:varchar(20)"`

	ElecUnitPrice   int
	WaterUnitPrice  int
	WaterCalcMethod WaterCalcMethod `gorm:"type:varchar(20)"`
}

func (r *repository) SaveBuilding(ctx context.Context, building *Building) error {
	tx := r.withContext(ctx).Save(building)
	return tx.Error
}

func (r *repository) GetBuilding(ctx context.Context, id uint64) (*Building, error) {
	var b Building
	tx := r.withContext(ctx).First(&b, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &b, nil
}

func (r *repository) ListBuildings(ctx context.Context) ([]Building, error) {
	var buildings = []Building{}
	tx := r.withContext(ctx).Order("id").Find(&buildings)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return buildings, nil
}

func (r *repository) ListBuildingsByManager(ctx context.Context, managerID string) ([]Building, error) {
	var buildings = []Building{}
	tx := r.withContext(ctx).Where("manager_id = ?", managerID).Order("id").Find(&buildings)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return buildings, nil
}

func (r *repository) DeleteBuilding(ctx context.Context, id uint64) (bool, error) {
	tx := r.withContext(ctx).Delete(&Building{}, "id = ?", id)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *repository) BuildingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Building{}).
		Where("id = ? AND manager_id = ?", id, managerID).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Tenant struct {
	ID uint64 `gorm:"primary_key;autoIncrement:false"`

	RoomID uint64 `gorm:"not null;index"`
	Room   Room

	UserID string `gorm:"type:varchar(50);index"`

	Name  string `gorm:"type:varchar(100);not null"`
	Phone string `gorm:"type:varchar(20)"`
	Email string `gorm:"type:varchar(255)"`

	IsContractHolder bool

	StartDate       time.Time
	ContractEndDate *time.Time
	EndDate         *time.Time
}

// Active reports whether the tenant still lives in the room, i.e. has not
// moved out yet.
func (t *Tenant) Active() bool {
	return t.EndDate == nil
}

func (r *repository) SaveTenant(ctx context.Context, tenant *Tenant) error {
	tx := r.withContext(ctx).Save(tenant)
	return tx.Error
}

func (r *repository) GetTenant(ctx context.Context, id uint64) (*Tenant, error) {
	var t Tenant
	tx := r.withContext(ctx).Preload("Room").First(&t, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &t, nil
}

func (r *repository) ListTenantsByRoom(ctx context.Context, roomID uint64) ([]Tenant, error) {
	var tenants = []Tenant{}
	tx := r.withContext(ctx).Where("room_id = ?", roomID).Order("start_date desc").Find(&tenants)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return tenants, nil
}

func (r *repository) CountActiveTenantsByRoom(ctx context.Context, roomID uint64) (int64, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Tenant{}).
		Where("room_id = ? AND end_date IS NULL", roomID).
		Count(&count)

	if tx.Error != nil {
		return 0, tx.Error
	}

	return count, nil
}

func (r *repository) GetContractHolder(ctx context.Context, roomID uint64) (*Tenant, error) {
	var t Tenant
	tx := r.withContext(ctx).
		First(&t, "room_id = ? AND is_contract_holder = ? AND end_date IS NULL", roomID, true)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &t, nil
}

// TenantExistsForManager walks tenant -> room -> building to the managing
// identity in a single existence query.
func (r *repository) TenantExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Tenant{}).
		Joins("JOIN rooms ON rooms.id = tenants.room_id").
		Joins("JOIN buildings ON buildings.id = rooms.building_id").
		Where("tenants.id = ? AND buildings.manager_id = ?", id, managerID).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

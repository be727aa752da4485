package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

type Invoice struct {
	ID uint64 `gorm:"primary_key;autoIncrement:false"`

	RoomID uint64 `gorm:"not null;index"`
	Room   Room

	TenantID uint64 `gorm:"not null"`
	Tenant   Tenant

	Period string `gorm:"type:varchar(7);not null;index"`

	RoomPrice   int
	ElecAmount  int
	WaterAmount int
	TotalAmount int

	Status  InvoiceStatus `gorm:"type:varchar(20);not null"`
	DueDate time.Time

	CreatedAt time.Time
}

func (r *repository) SaveInvoice(ctx context.Context, invoice *Invoice) error {
	tx := r.withContext(ctx).Save(invoice)
	return tx.Error
}

func (r *repository) GetInvoice(ctx context.Context, id uint64) (*Invoice, error) {
	var i Invoice
	tx := r.withContext(ctx).Preload("Room").Preload("Room.Building").Preload("Tenant").First(&i, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &i, nil
}

func (r *repository) ListInvoicesByBuilding(ctx context.Context, buildingID uint64, period string, status InvoiceStatus) ([]Invoice, error) {
	var invoices = []Invoice{}

	tx := r.withContext(ctx).
		Preload("Room").
		Preload("Tenant").
		Joins("JOIN rooms ON rooms.id = invoices.room_id").
		Where("rooms.building_id = ?", buildingID)

	if period != "" {
		tx = tx.Where("invoices.period = ?", period)
	}
	if status != "" {
		tx = tx.Where("invoices.status = ?", status)
	}

	tx = tx.Order("invoices.period desc, rooms.room_no").Find(&invoices)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return invoices, nil
}

func (r *repository) InvoiceExistsForRoomAndPeriod(ctx context.Context, roomID uint64, period string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Invoice{}).
		Where("room_id = ? AND period = ?", roomID, period).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

// InvoiceExistsForManager walks invoice -> room -> building to the managing
// identity in a single existence query.
func (r *repository) InvoiceExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&Invoice{}).
		Joins("JOIN rooms ON rooms.id = invoices.room_id").
		Joins("JOIN buildings ON buildings.id = rooms.building_id").
		Where("invoices.id = ? AND buildings.manager_id = ?", id, managerID).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

func (r *repository) MarkOverdueInvoices(ctx context.Context, deadline time.Time) (int64, error) {
	tx := r.withContext(ctx).
		Model(&Invoice{}).
		Where("status IN ? AND due_date < ?", []InvoiceStatus{InvoiceDraft, InvoiceSent}, deadline).
		Update("status", InvoiceOverdue)

	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	SaveUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) (Users, error)

	SaveBuilding(ctx context.Context, building *Building) error
	GetBuilding(ctx context.Context, id uint64) (*Building, error)
	ListBuildings(ctx context.Context) ([]Building, error)
	ListBuildingsByManager(ctx context.Context, managerID string) ([]Building, error)
	DeleteBuilding(ctx context.Context, id uint64) (bool, error)
	BuildingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)

	SaveRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, id uint64) (*Room, error)
	ListRoomsByBuilding(ctx context.Context, buildingID uint64) ([]Room, error)
	DeleteRoom(ctx context.Context, id uint64) (bool, error)
	RoomExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
	BuildingRoomsExistForManager(ctx context.Context, buildingID uint64, managerID string) (bool, error)

	SaveTenant(ctx context.Context, tenant *Tenant) error
	GetTenant(ctx context.Context, id uint64) (*Tenant, error)
	ListTenantsByRoom(ctx context.Context, roomID uint64) ([]Tenant, error)
	CountActiveTenantsByRoom(ctx context.Context, roomID uint64) (int64, error)
	GetContractHolder(ctx context.Context, roomID uint64) (*Tenant, error)
	TenantExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)

	SaveInvoice(ctx context.Context, invoice *Invoice) error
	GetInvoice(ctx context.Context, id uint64) (*Invoice, error)
	ListInvoicesByBuilding(ctx context.Context, buildingID uint64, period string, status InvoiceStatus) ([]Invoice, error)
	InvoiceExistsForRoomAndPeriod(ctx context.Context, roomID uint64, period string) (bool, error)
	InvoiceExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)
	MarkOverdueInvoices(ctx context.Context, deadline time.Time) (int64, error)

	SavePaymentLog(ctx context.Context, log *PaymentLog) error

	SaveUtilityReading(ctx context.Context, reading *UtilityReading) error
	GetUtilityReading(ctx context.Context, id uint64) (*UtilityReading, error)
	GetUtilityReadingByRoomAndMonth(ctx context.Context, roomID uint64, month string) (*UtilityReading, error)
	ListUtilityReadingsByRoom(ctx context.Context, roomID uint64) ([]UtilityReading, error)
	ListUtilityReadingsByBuildingAndMonth(ctx context.Context, buildingID uint64, month string) ([]UtilityReading, error)
	UtilityReadingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error)

	SaveTenantInvitation(ctx context.Context, invitation *TenantInvitation) error
	GetTenantInvitation(ctx context.Context, id uint64) (*TenantInvitation, error)
	GetTenantInvitationByToken(ctx context.Context, token string) (*TenantInvitation, error)
	PendingInvitationExists(ctx context.Context, roomID uint64, email string) (bool, error)
	ExpireStaleInvitations(ctx context.Context, now time.Time) (int64, error)

	Transaction(func(rp Repository) error) error
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

type repository struct {
	db *gorm.DB
}

func (r *repository) withContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *repository) Transaction(action func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return action(NewRepository(tx))
	})
}

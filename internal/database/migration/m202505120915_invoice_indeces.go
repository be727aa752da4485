package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func m202505120915_invoice_indeces() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202505120915",
		Migrate: func(db *gorm.DB) error {
			type Invoice struct {
				RoomID uint64 `gorm:"not null;index:idx_invoices_room_period,unique"`
				Period string `gorm:"type:varchar(7);not null;index:idx_invoices_room_period,unique"`
			}

			type UtilityReading struct {
				RoomID uint64 `gorm:"not null;index:idx_readings_room_month,unique"`
				Month  string `gorm:"type:varchar(7);not null;index:idx_readings_room_month,unique"`
			}

			return db.AutoMigrate(
				&Invoice{},
				&UtilityReading{},
			)
		},
		Rollback: nil,
	}
}

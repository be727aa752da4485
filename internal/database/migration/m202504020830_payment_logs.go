package migration

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func m202504020830_payment_logs() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202504020830",
		Migrate: func(db *gorm.DB) error {
			type PaymentLog struct {
				ID uint64 `gorm:"primary_key;autoIncrement:false"`

				InvoiceID uint64 `gorm:"not null;index"`

				Amount int
				Method string `gorm:"type:varchar(20)"`
				PaidBy string `gorm:"type:varchar(50)"`

				CreatedAt time.Time
			}

			return db.AutoMigrate(
				&PaymentLog{},
			)
		},
		Rollback: nil,
	}
}

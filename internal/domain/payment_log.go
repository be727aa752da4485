package domain

import (
	"context"
	"time"
)

type PaymentLog struct {
	ID uint64 `gorm:"primary_key;autoIncrement:false"`

	InvoiceID uint64 `gorm:"not null;index"`
	Invoice   Invoice

	Amount int
	Method string `gorm:"type:varchar(20)"`
	PaidBy string `gorm:"type:varchar(50)"`

	CreatedAt time.Time
}

func (r *repository) SavePaymentLog(ctx context.Context, log *PaymentLog) error {
	tx := r.withContext(ctx).Save(log)
	return tx.Error
}

package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationAccepted  InvitationStatus = "ACCEPTED"
	InvitationCancelled InvitationStatus = "CANCELLED"
	InvitationExpired   InvitationStatus = "EXPIRED"
)

type TenantInvitation struct {
	ID uint64 `gorm:"primary_key;autoIncrement:false"`

	RoomID uint64 `gorm:"not null;index"`
	Room   Room

	Email string `gorm:"type:varchar(255);not null"`

	// Token is the opaque value mailed to the invitee; accepting an
	// invitation is done by token, never by id.
	Token string `gorm:"type:varchar(64);uniqueIndex"`

	IsContractHolder bool
	ContractEndDate  *time.Time

	Status    InvitationStatus `gorm:"type:varchar(20);not null"`
	ExpiredAt time.Time        `gorm:"not null"`
	InvitedBy string           `gorm:"type:varchar(50)"`

	CreatedAt time.Time
}

func (i *TenantInvitation) Acceptable(now time.Time) bool {
	return i.Status == InvitationPending && now.Before(i.ExpiredAt)
}

func (r *repository) SaveTenantInvitation(ctx context.Context, invitation *TenantInvitation) error {
	tx := r.withContext(ctx).Save(invitation)
	return tx.Error
}

func (r *repository) GetTenantInvitation(ctx context.Context, id uint64) (*TenantInvitation, error) {
	var i TenantInvitation
	tx := r.withContext(ctx).First(&i, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &i, nil
}

func (r *repository) GetTenantInvitationByToken(ctx context.Context, token string) (*TenantInvitation, error) {
	var i TenantInvitation
	tx := r.withContext(ctx).Preload("Room").First(&i, "token = ?", token)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &i, nil
}

func (r *repository) PendingInvitationExists(ctx context.Context, roomID uint64, email string) (bool, error) {
	var count int64
	tx := r.withContext(ctx).
		Model(&TenantInvitation{}).
		Where("room_id = ? AND email = ? AND status = ?", roomID, email, InvitationPending).
		Count(&count)

	if tx.Error != nil {
		return false, tx.Error
	}

	return count > 0, nil
}

func (r *repository) ExpireStaleInvitations(ctx context.Context, now time.Time) (int64, error) {
	tx := r.withContext(ctx).
		Model(&TenantInvitation{}).
		Where("status = ? AND expired_at < ?", InvitationPending, now).
		Update("status", InvitationExpired)

	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
	"github.com/tpanh/rentd/internal/util"
)

const invitationTokenSize = 24

// InviteTenant creates a pending invitation for a room and mails the accept
// link to the invitee. Only one pending invitation per room and email may
// exist at a time.
func (s *Service) InviteTenant(ctx context.Context, roomID uint64, email string, isContractHolder bool, contractEndDate *time.Time, invitedBy string) (*domain.TenantInvitation, error) {
	if email == "" {
		return nil, errors.ErrEmailRequired
	}

	room, err := s.repository.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errors.ErrRoomNotFound
	}

	if isContractHolder {
		holder, err := s.repository.GetContractHolder(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if holder != nil {
			return nil, errors.ErrContractHolderExists
		}
	}

	pending, err := s.repository.PendingInvitationExists(ctx, roomID, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errors.ErrInvitationPendingExists
	}

	raw, err := util.RandomBytes(invitationTokenSize)
	if err != nil {
		return nil, err
	}

	ttl, err := s.config.Invitations.TTLDuration()
	if err != nil {
		return nil, err
	}

	invitation := &domain.TenantInvitation{
		ID:               util.NextID(),
		RoomID:           roomID,
		Email:            email,
		Token:            base58.FastBase58Encoding(raw),
		IsContractHolder: isContractHolder,
		ContractEndDate:  contractEndDate,
		Status:           domain.InvitationPending,
		ExpiredAt:        time.Now().UTC().Add(ttl),
		InvitedBy:        invitedBy,
	}

	if err := s.repository.SaveTenantInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	if err := s.mailer.SendInvitation(email, s.config.CreateUrl("/api/invitations/accept?token=%s", invitation.Token), invitation.ExpiredAt); err != nil {
		s.logger.Warn("Unable to send invitation mail", "email", email, "err", err)
	}

	return invitation, nil
}

// AcceptInvitation turns a pending invitation into a tenant of the target
// room. The caller must be authenticated with the account the invitation
// was addressed to.
func (s *Service) AcceptInvitation(ctx context.Context, token string) (*domain.Tenant, error) {
	if token == "" {
		return nil, errors.ErrTokenRequired
	}

	invitation, err := s.repository.GetTenantInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, errors.ErrInvitationNotFound
	}

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if invitation.Status != domain.InvitationPending {
		return nil, errors.ErrInvitationNotAcceptable
	}

	now := time.Now().UTC()
	if !invitation.Acceptable(now) {
		invitation.Status = domain.InvitationExpired
		if err := s.repository.SaveTenantInvitation(ctx, invitation); err != nil {
			return nil, err
		}
		return nil, errors.ErrInvitationNotAcceptable
	}

	if user.Email == "" || !strings.EqualFold(invitation.Email, user.Email) {
		return nil, errors.ErrInvitationEmailMismatch
	}

	if invitation.IsContractHolder {
		holder, err := s.repository.GetContractHolder(ctx, invitation.RoomID)
		if err != nil {
			return nil, err
		}
		if holder != nil {
			return nil, errors.ErrContractHolderExists
		}
	}

	tenant := &domain.Tenant{
		ID:               util.NextID(),
		RoomID:           invitation.RoomID,
		UserID:           user.ID,
		Name:             user.FullName,
		Email:            user.Email,
		IsContractHolder: invitation.IsContractHolder,
		StartDate:        now,
		ContractEndDate:  invitation.ContractEndDate,
	}

	err = s.repository.Transaction(func(tx domain.Repository) error {
		if err := tx.SaveTenant(ctx, tenant); err != nil {
			return err
		}

		room, err := tx.GetRoom(ctx, invitation.RoomID)
		if err != nil {
			return err
		}
		if room != nil && room.Status == domain.RoomVacant {
			room.Status = domain.RoomOccupied
			if err := tx.SaveRoom(ctx, room); err != nil {
				return err
			}
		}

		invitation.Status = domain.InvitationAccepted
		return tx.SaveTenantInvitation(ctx, invitation)
	})

	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// CancelInvitation withdraws a pending or expired invitation. An accepted
// invitation already produced a tenant and can no longer be cancelled.
func (s *Service) CancelInvitation(ctx context.Context, id uint64) (*domain.TenantInvitation, error) {
	invitation, err := s.repository.GetTenantInvitation(ctx, id)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, errors.ErrInvitationNotFound
	}

	if invitation.Status == domain.InvitationAccepted {
		return nil, errors.ErrInvitationNotAcceptable
	}

	invitation.Status = domain.InvitationCancelled

	if err := s.repository.SaveTenantInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	return invitation, nil
}

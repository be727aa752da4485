package permission

import (
	"context"

	"github.com/tpanh/rentd/internal/domain"
)

type InvitationStore interface {
	GetTenantInvitation(ctx context.Context, id uint64) (*domain.TenantInvitation, error)
}

func NewInvitationPermission(invitations InvitationStore, rooms *RoomPermission) *InvitationPermission {
	return &InvitationPermission{invitations: invitations, rooms: rooms}
}

type InvitationPermission struct {
	invitations InvitationStore
	rooms       *RoomPermission
}

// CanCancel resolves the invitation's target room and delegates wholesale to
// the room evaluator; the ownership definition for rooms lives there and
// only there. A missing invitation is a deny, the delegate is not consulted.
func (p *InvitationPermission) CanCancel(ctx context.Context, invitationID uint64) (bool, error) {
	invitation, err := p.invitations.GetTenantInvitation(ctx, invitationID)
	if err != nil {
		return false, err
	}
	if invitation == nil {
		return false, nil
	}

	return p.rooms.CanAccessRoom(ctx, invitation.RoomID)
}

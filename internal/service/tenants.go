package service

import (
	"context"
	"time"

	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
)

func (s *Service) GetTenant(ctx context.Context, id uint64) (*domain.Tenant, error) {
	tenant, err := s.repository.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, errors.ErrTenantNotFound
	}
	return tenant, nil
}

func (s *Service) ListTenants(ctx context.Context, roomID uint64) ([]domain.Tenant, error) {
	return s.repository.ListTenantsByRoom(ctx, roomID)
}

// EndTenancy closes a tenancy. The room flips back to vacant once its last
// active tenant is gone.
func (s *Service) EndTenancy(ctx context.Context, id uint64) (*domain.Tenant, error) {
	tenant, err := s.repository.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, errors.ErrTenantNotFound
	}
	if !tenant.Active() {
		return tenant, nil
	}

	now := time.Now().UTC()
	tenant.EndDate = &now

	err = s.repository.Transaction(func(tx domain.Repository) error {
		if err := tx.SaveTenant(ctx, tenant); err != nil {
			return err
		}

		remaining, err := tx.CountActiveTenantsByRoom(ctx, tenant.RoomID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		room, err := tx.GetRoom(ctx, tenant.RoomID)
		if err != nil {
			return err
		}
		if room != nil && room.Status == domain.RoomOccupied {
			room.Status = domain.RoomVacant
			return tx.SaveRoom(ctx, room)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return tenant, nil
}

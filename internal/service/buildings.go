package service

import (
	"context"

	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
	"github.com/tpanh/rentd/internal/util"
)

// CreateBuilding registers a building under the calling manager.
func (s *Service) CreateBuilding(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	managerID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	building.ID = util.NextID()
	building.ManagerID = managerID

	if err := s.repository.SaveBuilding(ctx, building); err != nil {
		return nil, err
	}

	return building, nil
}

func (s *Service) GetBuilding(ctx context.Context, id uint64) (*domain.Building, error) {
	building, err := s.repository.GetBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, errors.ErrBuildingNotFound
	}
	return building, nil
}

// ListBuildings returns every building for an administrator and the
// caller's own buildings for anyone else.
func (s *Service) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	principal, err := auth.CurrentPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if principal.HasRole(string(domain.RoleAdmin)) {
		return s.repository.ListBuildings(ctx)
	}

	return s.repository.ListBuildingsByManager(ctx, principal.UserID())
}

func (s *Service) UpdateBuilding(ctx context.Context, id uint64, update *domain.Building) (*domain.Building, error) {
	building, err := s.repository.GetBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, errors.ErrBuildingNotFound
	}

	building.Name = update.Name
	building.OwnerName = update.OwnerName
	building.OwnerPhone = update.OwnerPhone
	building.ElecUnitPrice = update.ElecUnitPrice
	building.WaterUnitPrice = update.WaterUnitPrice
	building.WaterCalcMethod = update.WaterCalcMethod

	if err := s.repository.SaveBuilding(ctx, building); err != nil {
		return nil, err
	}

	return building, nil
}

func (s *Service) DeleteBuilding(ctx context.Context, id uint64) error {
	ok, err := s.repository.DeleteBuilding(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrBuildingNotFound
	}
	return nil
}

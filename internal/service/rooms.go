package service

import (
	"context"

	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
	"github.com/tpanh/rentd/internal/util"
)

func (s *Service) CreateRoom(ctx context.Context, buildingID uint64, room *domain.Room) (*domain.Room, error) {
	building, err := s.repository.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, errors.ErrBuildingNotFound
	}

	room.ID = util.NextID()
	room.BuildingID = buildingID
	if room.Status == "" {
		room.Status = domain.RoomVacant
	}

	if err := s.repository.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id uint64) (*domain.Room, error) {
	room, err := s.repository.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errors.ErrRoomNotFound
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, buildingID uint64) ([]domain.Room, error) {
	return s.repository.ListRoomsByBuilding(ctx, buildingID)
}

func (s *Service) UpdateRoom(ctx context.Context, id uint64, update *domain.Room) (*domain.Room, error) {
	room, err := s.repository.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errors.ErrRoomNotFound
	}

	room.RoomNo = update.RoomNo
	room.Price = update.Price
	if update.Status != "" {
		room.Status = update.Status
	}

	if err := s.repository.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id uint64) error {
	ok, err := s.repository.DeleteRoom(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrRoomNotFound
	}
	return nil
}

package service

import (
	"context"

	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
	"github.com/tpanh/rentd/internal/util"
)

// RecordUtilityReading stores the meter indexes of a room for one month.
// Recording the same month again overwrites the indexes in place, a typo
// correction must not leave two rows behind.
func (s *Service) RecordUtilityReading(ctx context.Context, roomID uint64, month string, electricIndex, waterIndex *int) (*domain.UtilityReading, error) {
	if !util.ValidPeriod(month) {
		return nil, errors.ErrInvalidPeriod
	}

	room, err := s.repository.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errors.ErrRoomNotFound
	}

	reading, err := s.repository.GetUtilityReadingByRoomAndMonth(ctx, roomID, month)
	if err != nil {
		return nil, err
	}

	if reading == nil {
		reading = &domain.UtilityReading{
			ID:     util.NextID(),
			RoomID: roomID,
			Month:  month,
		}
	}

	if electricIndex != nil {
		reading.ElectricIndex = electricIndex
	}
	if waterIndex != nil {
		reading.WaterIndex = waterIndex
	}

	if err := s.repository.SaveUtilityReading(ctx, reading); err != nil {
		return nil, err
	}

	return reading, nil
}

func (s *Service) GetUtilityReading(ctx context.Context, id uint64) (*domain.UtilityReading, error) {
	reading, err := s.repository.GetUtilityReading(ctx, id)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, errors.ErrReadingNotFound
	}
	return reading, nil
}

func (s *Service) ListUtilityReadings(ctx context.Context, roomID uint64) ([]domain.UtilityReading, error) {
	return s.repository.ListUtilityReadingsByRoom(ctx, roomID)
}

func (s *Service) ListBuildingUtilityReadings(ctx context.Context, buildingID uint64, month string) ([]domain.UtilityReading, error) {
	if !util.ValidPeriod(month) {
		return nil, errors.ErrInvalidPeriod
	}
	return s.repository.ListUtilityReadingsByBuildingAndMonth(ctx, buildingID, month)
}

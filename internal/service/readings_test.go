package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
)

func TestRecordUtilityReading(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms[10] = &domain.Room{ID: 10, BuildingID: 1, RoomNo: "101"}

	svc := newTestService(t, repo)

	reading, err := svc.RecordUtilityReading(context.Background(), 10, "2025-03", intp(120), nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-03", reading.Month)
	require.NotNil(t, reading.ElectricIndex)
	assert.Equal(t, 120, *reading.ElectricIndex)
	assert.Nil(t, reading.WaterIndex)
	assert.Len(t, repo.readings, 1)
}

func TestRecordUtilityReadingUpdatesInPlace(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms[10] = &domain.Room{ID: 10, BuildingID: 1, RoomNo: "101"}
	repo.readings[1] = &domain.UtilityReading{ID: 1, RoomID: 10, Month: "2025-03", ElectricIndex: intp(120)}

	svc := newTestService(t, repo)

	reading, err := svc.RecordUtilityReading(context.Background(), 10, "2025-03", intp(125), intp(40))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), reading.ID)
	assert.Equal(t, 125, *reading.ElectricIndex)
	assert.Equal(t, 40, *reading.WaterIndex)
	assert.Len(t, repo.readings, 1)
}

func TestRecordUtilityReadingKeepsUntouchedIndex(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms[10] = &domain.Room{ID: 10, BuildingID: 1, RoomNo: "101"}
	repo.readings[1] = &domain.UtilityReading{ID: 1, RoomID: 10, Month: "2025-03", ElectricIndex: intp(120), WaterIndex: intp(40)}

	svc := newTestService(t, repo)

	reading, err := svc.RecordUtilityReading(context.Background(), 10, "2025-03", nil, intp(42))
	require.NoError(t, err)

	assert.Equal(t, 120, *reading.ElectricIndex)
	assert.Equal(t, 42, *reading.WaterIndex)
}

func TestRecordUtilityReadingValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms[10] = &domain.Room{ID: 10, BuildingID: 1, RoomNo: "101"}

	svc := newTestService(t, repo)

	_, err := svc.RecordUtilityReading(context.Background(), 10, "2025-3", intp(1), nil)
	assert.ErrorIs(t, err, errors.ErrInvalidPeriod)

	_, err = svc.RecordUtilityReading(context.Background(), 404, "2025-03", intp(1), nil)
	assert.ErrorIs(t, err, errors.ErrRoomNotFound)
}

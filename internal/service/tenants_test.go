package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
)

func TestEndTenancyFreesTheRoom(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms[10] = &domain.Room{ID: 10, BuildingID: 1, RoomNo: "101", Status: domain.RoomOccupied}
	repo.tenants[100] = &domain.Tenant{ID: 100, RoomID: 10, Name: "An", StartDate: time.Now()}

	svc := newTestService(t, repo)

	tenant, err := svc.EndTenancy(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, tenant.EndDate)
	assert.False(t, tenant.Active())

	// last tenant out, the room goes back on the market
	assert.Equal(t, domain.RoomVacant, repo.rooms[10].Status)
}

func TestEndTenancyKeepsRoomOccupiedWhileOthersStay(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms[10] = &domain.Room{ID: 10, BuildingID: 1, RoomNo: "101", Status: domain.RoomOccupied}
	repo.tenants[100] = &domain.Tenant{ID: 100, RoomID: 10, Name: "An", StartDate: time.Now()}
	repo.tenants[101] = &domain.Tenant{ID: 101, RoomID: 10, Name: "Binh", StartDate: time.Now()}

	svc := newTestService(t, repo)

	_, err := svc.EndTenancy(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, domain.RoomOccupied, repo.rooms[10].Status)
}

func TestEndTenancyIsIdempotent(t *testing.T) {
	past := time.Now().AddDate(0, -1, 0)
	repo := newFakeRepo()
	repo.tenants[100] = &domain.Tenant{ID: 100, RoomID: 10, Name: "An", EndDate: &past}

	svc := newTestService(t, repo)

	tenant, err := svc.EndTenancy(context.Background(), 100)
	require.NoError(t, err)
	assert.WithinDuration(t, past, *tenant.EndDate, time.Second)

	_, err = svc.EndTenancy(context.Background(), 404)
	assert.ErrorIs(t, err, errors.ErrTenantNotFound)
}

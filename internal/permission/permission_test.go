package permission

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/domain"
)

type fakeBuildingStore struct {
	owned map[uint64]string
	err   error
	calls int
}

func (f *fakeBuildingStore) BuildingExistsForManager(_ context.Context, id uint64, managerID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.owned[id] == managerID, nil
}

type fakeRoomStore struct {
	rooms         map[uint64]string
	buildings     map[uint64]string
	err           error
	roomCalls     int
	buildingCalls int
}

func (f *fakeRoomStore) RoomExistsForManager(_ context.Context, id uint64, managerID string) (bool, error) {
	f.roomCalls++
	if f.err != nil {
		return false, f.err
	}
	return f.rooms[id] == managerID, nil
}

func (f *fakeRoomStore) BuildingRoomsExistForManager(_ context.Context, buildingID uint64, managerID string) (bool, error) {
	f.buildingCalls++
	if f.err != nil {
		return false, f.err
	}
	return f.buildings[buildingID] == managerID, nil
}

type fakeInvitationStore struct {
	invitations map[uint64]*domain.TenantInvitation
	err         error
	calls       int
}

func (f *fakeInvitationStore) GetTenantInvitation(_ context.Context, id uint64) (*domain.TenantInvitation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.invitations[id], nil
}

func contextFor(userID string, roles ...string) context.Context {
	return auth.ContextWithPrincipal(context.Background(), auth.NewPrincipal(userID, roles))
}

func TestBuildingPermission(t *testing.T) {
	store := &fakeBuildingStore{owned: map[uint64]string{100: "mgr-1"}}
	p := NewBuildingPermission(store)

	t.Run("owner is allowed", func(t *testing.T) {
		ok, err := p.CanAccessBuilding(contextFor("mgr-1", "ROLE_MANAGER"), 100)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other manager is denied", func(t *testing.T) {
		ok, err := p.CanAccessBuilding(contextFor("mgr-2", "ROLE_MANAGER"), 100)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing building is denied", func(t *testing.T) {
		ok, err := p.CanAccessBuilding(contextFor("mgr-1", "ROLE_MANAGER"), 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no principal is denied without a query", func(t *testing.T) {
		before := store.calls
		ok, err := p.CanAccessBuilding(context.Background(), 100)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, before, store.calls)
	})
}

func TestAdminBypassesOwnership(t *testing.T) {
	// The administrative role short-circuits before any store access, so it
	// must allow even ids that do not exist.
	store := &fakeBuildingStore{owned: map[uint64]string{}}
	p := NewBuildingPermission(store)

	for _, role := range []string{"ADMIN", "ROLE_ADMIN"} {
		t.Run(role, func(t *testing.T) {
			ok, err := p.CanAccessBuilding(contextFor("admin-1", role), 424242)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
	assert.Zero(t, store.calls)
}

func TestBuildingPermissionStoreFailure(t *testing.T) {
	store := &fakeBuildingStore{err: fmt.Errorf("connection refused")}
	p := NewBuildingPermission(store)

	ok, err := p.CanAccessBuilding(contextFor("mgr-1", "ROLE_MANAGER"), 100)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestRoomPermission(t *testing.T) {
	store := &fakeRoomStore{
		rooms:     map[uint64]string{10: "mgr-1"},
		buildings: map[uint64]string{100: "mgr-1"},
	}
	p := NewRoomPermission(store)

	ok, err := p.CanAccessRoom(contextFor("mgr-1", "ROLE_MANAGER"), 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanAccessRoom(contextFor("mgr-2", "ROLE_MANAGER"), 10)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.CanAccessBuildingRooms(contextFor("mgr-1", "ROLE_MANAGER"), 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanAccessBuildingRooms(contextFor("mgr-2", "ROLE_MANAGER"), 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTenantPermissionDelegation(t *testing.T) {
	roomStore := &fakeRoomStore{
		rooms:     map[uint64]string{10: "mgr-1"},
		buildings: map[uint64]string{100: "mgr-1"},
	}
	tenants := NewTenantPermission(tenantStoreFunc(func(ctx context.Context, id uint64, managerID string) (bool, error) {
		return id == 7 && managerID == "mgr-1", nil
	}), NewRoomPermission(roomStore))

	ok, err := tenants.CanAccessTenant(contextFor("mgr-1", "ROLE_MANAGER"), 7)
	require.NoError(t, err)
	assert.True(t, ok)

	// Room and building collection checks route through the room evaluator.
	ok, err = tenants.CanAccessRoomTenants(contextFor("mgr-1", "ROLE_MANAGER"), 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, roomStore.roomCalls)

	ok, err = tenants.CanAccessBuildingTenants(contextFor("mgr-2", "ROLE_MANAGER"), 100)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, roomStore.buildingCalls)
}

type tenantStoreFunc func(ctx context.Context, id uint64, managerID string) (bool, error)

func (f tenantStoreFunc) TenantExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	return f(ctx, id, managerID)
}

type invoiceStoreFunc func(ctx context.Context, id uint64, managerID string) (bool, error)

func (f invoiceStoreFunc) InvoiceExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	return f(ctx, id, managerID)
}

type readingStoreFunc func(ctx context.Context, id uint64, managerID string) (bool, error)

func (f readingStoreFunc) UtilityReadingExistsForManager(ctx context.Context, id uint64, managerID string) (bool, error) {
	return f(ctx, id, managerID)
}

func TestInvoicePermission(t *testing.T) {
	buildingStore := &fakeBuildingStore{owned: map[uint64]string{100: "mgr-1"}}
	p := NewInvoicePermission(invoiceStoreFunc(func(ctx context.Context, id uint64, managerID string) (bool, error) {
		return id == 55 && managerID == "mgr-1", nil
	}), NewBuildingPermission(buildingStore))

	ok, err := p.CanAccessInvoice(contextFor("mgr-1", "ROLE_MANAGER"), 55)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanAccessInvoice(contextFor("mgr-2", "ROLE_MANAGER"), 55)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.CanAccessBuildingInvoices(contextFor("mgr-1", "ROLE_MANAGER"), 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, buildingStore.calls)
}

func TestUtilityReadingPermission(t *testing.T) {
	roomStore := &fakeRoomStore{
		rooms:     map[uint64]string{10: "mgr-1"},
		buildings: map[uint64]string{100: "mgr-1"},
	}
	p := NewUtilityReadingPermission(readingStoreFunc(func(ctx context.Context, id uint64, managerID string) (bool, error) {
		return id == 3 && managerID == "mgr-1", nil
	}), NewRoomPermission(roomStore))

	ok, err := p.CanAccessUtilityReading(contextFor("mgr-1", "ROLE_MANAGER"), 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanAccessRoomUtilityReadings(contextFor("mgr-1", "ROLE_MANAGER"), 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanAccessBuildingUtilityReadings(contextFor("mgr-2", "ROLE_MANAGER"), 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvitationPermission(t *testing.T) {
	roomStore := &fakeRoomStore{rooms: map[uint64]string{10: "mgr-2"}}
	invitationStore := &fakeInvitationStore{invitations: map[uint64]*domain.TenantInvitation{
		1: {ID: 1, RoomID: 10},
	}}
	p := NewInvitationPermission(invitationStore, NewRoomPermission(roomStore))

	t.Run("delegates to the room ownership chain", func(t *testing.T) {
		ok, err := p.CanCancel(contextFor("mgr-2", "ROLE_MANAGER"), 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = p.CanCancel(contextFor("mgr-1", "ROLE_MANAGER"), 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing invitation denies without consulting the room check", func(t *testing.T) {
		invitationStore.calls = 0
		roomStore.roomCalls = 0

		ok, err := p.CanCancel(contextFor("mgr-2", "ROLE_MANAGER"), 999)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, invitationStore.calls)
		assert.Zero(t, roomStore.roomCalls)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		failing := NewInvitationPermission(&fakeInvitationStore{err: fmt.Errorf("timeout")}, NewRoomPermission(roomStore))
		ok, err := failing.CanCancel(contextFor("mgr-2", "ROLE_MANAGER"), 1)
		require.Error(t, err)
		assert.False(t, ok)
	})
}

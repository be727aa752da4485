package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/token"
)

// fakeRepo is an in-memory stand-in for the database-backed repository.
// Methods a test never reaches fall through to the embedded nil interface
// and panic, which surfaces unexpected queries immediately.
type fakeRepo struct {
	domain.Repository

	users       map[string]*domain.User
	buildings   map[uint64]*domain.Building
	rooms       map[uint64]*domain.Room
	tenants     map[uint64]*domain.Tenant
	invoices    map[uint64]*domain.Invoice
	readings    map[uint64]*domain.UtilityReading
	invitations map[uint64]*domain.TenantInvitation
	payments    []domain.PaymentLog
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       make(map[string]*domain.User),
		buildings:   make(map[uint64]*domain.Building),
		rooms:       make(map[uint64]*domain.Room),
		tenants:     make(map[uint64]*domain.Tenant),
		invoices:    make(map[uint64]*domain.Invoice),
		readings:    make(map[uint64]*domain.UtilityReading),
		invitations: make(map[uint64]*domain.TenantInvitation),
	}
}

func (f *fakeRepo) Transaction(action func(domain.Repository) error) error {
	return action(f)
}

func (f *fakeRepo) SaveUser(_ context.Context, user *domain.User) error {
	c := *user
	f.users[user.ID] = &c
	return nil
}

func (f *fakeRepo) GetUser(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetBuilding(_ context.Context, id uint64) (*domain.Building, error) {
	b, ok := f.buildings[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (f *fakeRepo) SaveRoom(_ context.Context, room *domain.Room) error {
	c := *room
	f.rooms[room.ID] = &c
	return nil
}

func (f *fakeRepo) GetRoom(_ context.Context, id uint64) (*domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (f *fakeRepo) ListRoomsByBuilding(_ context.Context, buildingID uint64) ([]domain.Room, error) {
	var rooms []domain.Room
	for _, r := range f.rooms {
		if r.BuildingID == buildingID {
			rooms = append(rooms, *r)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (f *fakeRepo) SaveTenant(_ context.Context, tenant *domain.Tenant) error {
	c := *tenant
	f.tenants[tenant.ID] = &c
	return nil
}

func (f *fakeRepo) GetTenant(_ context.Context, id uint64) (*domain.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (f *fakeRepo) CountActiveTenantsByRoom(_ context.Context, roomID uint64) (int64, error) {
	var n int64
	for _, t := range f.tenants {
		if t.RoomID == roomID && t.Active() {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) GetContractHolder(_ context.Context, roomID uint64) (*domain.Tenant, error) {
	for _, t := range f.tenants {
		if t.RoomID == roomID && t.IsContractHolder && t.Active() {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) SaveInvoice(_ context.Context, invoice *domain.Invoice) error {
	c := *invoice
	f.invoices[invoice.ID] = &c
	return nil
}

func (f *fakeRepo) GetInvoice(_ context.Context, id uint64) (*domain.Invoice, error) {
	i, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	c := *i
	return &c, nil
}

func (f *fakeRepo) InvoiceExistsForRoomAndPeriod(_ context.Context, roomID uint64, period string) (bool, error) {
	for _, i := range f.invoices {
		if i.RoomID == roomID && i.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) SavePaymentLog(_ context.Context, log *domain.PaymentLog) error {
	f.payments = append(f.payments, *log)
	return nil
}

func (f *fakeRepo) SaveUtilityReading(_ context.Context, reading *domain.UtilityReading) error {
	c := *reading
	f.readings[reading.ID] = &c
	return nil
}

func (f *fakeRepo) GetUtilityReadingByRoomAndMonth(_ context.Context, roomID uint64, month string) (*domain.UtilityReading, error) {
	for _, r := range f.readings {
		if r.RoomID == roomID && r.Month == month {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListUtilityReadingsByRoom(_ context.Context, roomID uint64) ([]domain.UtilityReading, error) {
	var readings []domain.UtilityReading
	for _, r := range f.readings {
		if r.RoomID == roomID {
			readings = append(readings, *r)
		}
	}
	sort.Slice(readings, func(i, j int) bool { return readings[i].Month > readings[j].Month })
	return readings, nil
}

func (f *fakeRepo) SaveTenantInvitation(_ context.Context, invitation *domain.TenantInvitation) error {
	c := *invitation
	f.invitations[invitation.ID] = &c
	return nil
}

func (f *fakeRepo) GetTenantInvitation(_ context.Context, id uint64) (*domain.TenantInvitation, error) {
	i, ok := f.invitations[id]
	if !ok {
		return nil, nil
	}
	c := *i
	return &c, nil
}

func (f *fakeRepo) GetTenantInvitationByToken(_ context.Context, token string) (*domain.TenantInvitation, error) {
	for _, i := range f.invitations {
		if i.Token == token {
			c := *i
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) PendingInvitationExists(_ context.Context, roomID uint64, email string) (bool, error) {
	for _, i := range f.invitations {
		if i.RoomID == roomID && i.Email == email && i.Status == domain.InvitationPending {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T, repo domain.Repository) *Service {
	t.Helper()

	c := &config.Config{
		ServerUrl:   "https://rentd.example.com",
		Jwt:         config.Jwt{Secret: "test-secret", Expiration: "24h"},
		Invitations: config.Invitations{TTL: "168h"},
	}

	tokens, err := token.NewService(c.Jwt.Secret, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	return NewService(repo, tokens, NewMailer(c.Email), c)
}

func authContext(userID string, roles ...string) context.Context {
	return auth.ContextWithPrincipal(context.Background(), auth.NewPrincipal(userID, roles))
}

func intp(v int) *int {
	return &v
}

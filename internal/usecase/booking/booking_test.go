package booking

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/audit"
	domain "github.com/openstays/stay-booking/internal/domain/booking"
	"github.com/openstays/stay-booking/internal/dto"
	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/models"
)

// ======================================================
// In-memory repository
// ======================================================

type mockRepo struct {
	properties map[uint]*models.Property
	bookings   map[uint]*models.Booking
	nextID     uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		properties: make(map[uint]*models.Property),
		bookings:   make(map[uint]*models.Booking),
		nextID:     1,
	}
}

func (m *mockRepo) addProperty(p models.Property) *models.Property {
	cp := p
	m.properties[cp.ID] = &cp
	return &cp
}

func (m *mockRepo) addBooking(b models.Booking) *models.Booking {
	cp := b
	if cp.ID == 0 {
		cp.ID = m.nextID
		m.nextID++
	}
	if prop, ok := m.properties[cp.PropertyID]; ok {
		cp.Property = *prop
	}
	m.bookings[cp.ID] = &cp
	return &cp
}

func (m *mockRepo) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	b.ID = m.nextID
	m.nextID++
	cp := *b
	m.bookings[cp.ID] = &cp
	return nil
}

func (m *mockRepo) HasAcceptedOverlap(ctx context.Context, propertyID uint, start, end time.Time) (bool, error) {
	for _, b := range m.bookings {
		if b.PropertyID != propertyID || b.Status != string(domain.StatusAccepted) {
			continue
		}
		if domain.Overlaps(b.StartDate, b.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	cp := *b
	m.bookings[cp.ID] = &cp
	return nil
}

func (m *mockRepo) AcceptWithRecheck(ctx context.Context, b *models.Booking) error {
	if _, ok := m.properties[b.PropertyID]; !ok {
		return httperr.ErrBusiness("property_not_found")
	}
	for _, other := range m.bookings {
		if other.ID == b.ID || other.PropertyID != b.PropertyID {
			continue
		}
		if other.Status != string(domain.StatusAccepted) {
			continue
		}
		if domain.Overlaps(other.StartDate, other.EndDate, b.StartDate, b.EndDate) {
			return httperr.ErrBusiness("dates_unavailable")
		}
	}
	cp := *b
	m.bookings[cp.ID] = &cp
	return nil
}

func (m *mockRepo) ListForTraveler(ctx context.Context, travelerID uint) ([]dto.TravelerBookingRow, error) {
	var rows []dto.TravelerBookingRow
	for _, b := range m.bookings {
		if b.TravelerID == travelerID {
			rows = append(rows, dto.TravelerBookingRow{ID: b.ID, Status: b.Status})
		}
	}
	return rows, nil
}

func (m *mockRepo) ListForOwner(ctx context.Context, ownerID uint) ([]dto.OwnerBookingRow, error) {
	var rows []dto.OwnerBookingRow
	for _, b := range m.bookings {
		if b.Property.OwnerID == ownerID {
			rows = append(rows, dto.OwnerBookingRow{ID: b.ID, Status: b.Status})
		}
	}
	return rows, nil
}

var _ domain.Repository = (*mockRepo)(nil)

// ======================================================
// Fixtures
// ======================================================

const (
	ownerID    uint = 1
	travelerID uint = 2
	strangerID uint = 3
)

func seedProperty(repo *mockRepo) *models.Property {
	return repo.addProperty(models.Property{
		ID:            10,
		OwnerID:       ownerID,
		Name:          "Beach Loft",
		PricePerNight: 100,
		MaxGuests:     4,
	})
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func wantBusiness(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected business error %q, got nil", code)
	}
	if got := httperr.BusinessCode(err); got != code {
		t.Fatalf("expected business error %q, got %q (%v)", code, got, err)
	}
}

// ======================================================
// Create
// ======================================================

func TestCreateBookingSuccess(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil))

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		TravelerID: travelerID,
		PropertyID: 10,
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-05",
		NumGuests:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Status != string(domain.StatusPending) {
		t.Errorf("expected pending status, got %q", b.Status)
	}
	if b.TotalPrice != 400 {
		t.Errorf("expected total price 400 for 4 nights at 100, got %v", b.TotalPrice)
	}
	if b.ID == 0 {
		t.Error("expected the booking to be persisted with an id")
	}
}

func TestCreateBookingRejectsOverlapWithAccepted(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: strangerID,
		StartDate:  day(t, "2024-06-01"),
		EndDate:    day(t, "2024-06-05"),
		Status:     string(domain.StatusAccepted),
	})
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		TravelerID: travelerID,
		PropertyID: 10,
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-07",
		NumGuests:  2,
	})
	wantBusiness(t, err, "dates_unavailable")
}

func TestCreateBookingAllowsTouchingRanges(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: strangerID,
		StartDate:  day(t, "2024-06-01"),
		EndDate:    day(t, "2024-06-05"),
		Status:     string(domain.StatusAccepted),
	})
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil))

	// Checkin on the previous guest's checkout day is fine.
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		TravelerID: travelerID,
		PropertyID: 10,
		StartDate:  "2024-06-05",
		EndDate:    "2024-06-10",
		NumGuests:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalPrice != 500 {
		t.Errorf("expected total price 500, got %v", b.TotalPrice)
	}
}

func TestCreateBookingIgnoresPendingOverlap(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: strangerID,
		StartDate:  day(t, "2024-06-01"),
		EndDate:    day(t, "2024-06-05"),
		Status:     string(domain.StatusPending),
	})
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil))

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		TravelerID: travelerID,
		PropertyID: 10,
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-05",
		NumGuests:  2,
	}); err != nil {
		t.Fatalf("pending requests must not block new ones: %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil))

	cases := []struct {
		name string
		in   CreateBookingInput
		code string
	}{
		{
			name: "missing property",
			in:   CreateBookingInput{TravelerID: travelerID, StartDate: "2024-06-01", EndDate: "2024-06-05", NumGuests: 2},
			code: "invalid_request",
		},
		{
			name: "malformed date",
			in:   CreateBookingInput{TravelerID: travelerID, PropertyID: 10, StartDate: "June 1st", EndDate: "2024-06-05", NumGuests: 2},
			code: "invalid_dates",
		},
		{
			name: "end before start",
			in:   CreateBookingInput{TravelerID: travelerID, PropertyID: 10, StartDate: "2024-06-05", EndDate: "2024-06-01", NumGuests: 2},
			code: "invalid_dates",
		},
		{
			name: "zero-night stay",
			in:   CreateBookingInput{TravelerID: travelerID, PropertyID: 10, StartDate: "2024-06-05", EndDate: "2024-06-05", NumGuests: 2},
			code: "invalid_dates",
		},
		{
			name: "unknown property",
			in:   CreateBookingInput{TravelerID: travelerID, PropertyID: 999, StartDate: "2024-06-01", EndDate: "2024-06-05", NumGuests: 2},
			code: "property_not_found",
		},
		{
			name: "too many guests",
			in:   CreateBookingInput{TravelerID: travelerID, PropertyID: 10, StartDate: "2024-06-01", EndDate: "2024-06-05", NumGuests: 5},
			code: "max_guests_exceeded",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			wantBusiness(t, err, tc.code)
		})
	}
}

// ======================================================
// Accept
// ======================================================

func TestAcceptBookingSuccess(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	pending := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		StartDate:  day(t, "2024-06-01"),
		EndDate:    day(t, "2024-06-05"),
		Status:     string(domain.StatusPending),
	})
	uc := NewAcceptBooking(repo, audit.NewDispatcher(nil))

	b, err := uc.Execute(context.Background(), ownerID, pending.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != string(domain.StatusAccepted) {
		t.Errorf("expected accepted status, got %q", b.Status)
	}
	if b.AcceptedAt == nil {
		t.Error("expected AcceptedAt to be set")
	}
}

func TestAcceptBookingWrongOwner(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	pending := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		Status:     string(domain.StatusPending),
	})
	uc := NewAcceptBooking(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), strangerID, pending.ID)
	wantBusiness(t, err, "not_authorized")
}

func TestAcceptBookingNotFound(t *testing.T) {
	repo := newMockRepo()
	uc := NewAcceptBooking(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), ownerID, 404)
	wantBusiness(t, err, "booking_not_found")
}

func TestAcceptBookingRejectsNonPending(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	uc := NewAcceptBooking(repo, audit.NewDispatcher(nil))

	for _, status := range []domain.Status{domain.StatusAccepted, domain.StatusCancelled} {
		b := repo.addBooking(models.Booking{
			PropertyID: 10,
			TravelerID: travelerID,
			Status:     string(status),
		})
		_, err := uc.Execute(context.Background(), ownerID, b.ID)
		wantBusiness(t, err, "invalid_state")
	}
}

func TestAcceptBookingRecheckConflict(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	// Another request for the same dates was accepted first.
	repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: strangerID,
		StartDate:  day(t, "2024-06-01"),
		EndDate:    day(t, "2024-06-05"),
		Status:     string(domain.StatusAccepted),
	})
	pending := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		StartDate:  day(t, "2024-06-03"),
		EndDate:    day(t, "2024-06-07"),
		Status:     string(domain.StatusPending),
	})
	uc := NewAcceptBooking(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), ownerID, pending.ID)
	wantBusiness(t, err, "dates_unavailable")

	stored, _ := repo.GetBooking(context.Background(), pending.ID)
	if stored.Status != string(domain.StatusPending) {
		t.Errorf("losing booking must stay pending, got %q", stored.Status)
	}
}

func TestAcceptBookingPropertyGone(t *testing.T) {
	repo := newMockRepo()
	prop := seedProperty(repo)
	pending := repo.addBooking(models.Booking{
		PropertyID: prop.ID,
		TravelerID: travelerID,
		Status:     string(domain.StatusPending),
	})
	delete(repo.properties, prop.ID)
	uc := NewAcceptBooking(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), ownerID, pending.ID)
	wantBusiness(t, err, "property_not_found")
}

// ======================================================
// Cancel
// ======================================================

func TestCancelBookingByTraveler(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	b := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		Status:     string(domain.StatusAccepted),
	})
	uc := NewCancelBooking(repo, audit.NewDispatcher(nil))

	out, err := uc.Execute(context.Background(), travelerID, models.RoleTraveler, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != string(domain.StatusCancelled) {
		t.Errorf("expected cancelled status, got %q", out.Status)
	}
	if out.CancelledAt == nil {
		t.Error("expected CancelledAt to be set")
	}
}

func TestCancelBookingByOwner(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	b := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		Status:     string(domain.StatusPending),
	})
	uc := NewCancelBooking(repo, audit.NewDispatcher(nil))

	out, err := uc.Execute(context.Background(), ownerID, models.RoleOwner, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != string(domain.StatusCancelled) {
		t.Errorf("expected cancelled status, got %q", out.Status)
	}
}

func TestCancelBookingStranger(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	b := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		Status:     string(domain.StatusPending),
	})
	uc := NewCancelBooking(repo, audit.NewDispatcher(nil))

	if _, err := uc.Execute(context.Background(), strangerID, models.RoleTraveler, b.ID); err == nil {
		t.Fatal("expected error for unrelated traveler")
	}
	if _, err := uc.Execute(context.Background(), strangerID, models.RoleOwner, b.ID); err == nil {
		t.Fatal("expected error for unrelated owner")
	}
}

func TestCancelBookingIdempotent(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	b := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		Status:     string(domain.StatusAccepted),
	})
	uc := NewCancelBooking(repo, audit.NewDispatcher(nil))

	first, err := uc.Execute(context.Background(), travelerID, models.RoleTraveler, b.ID)
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	firstAt := *first.CancelledAt

	second, err := uc.Execute(context.Background(), travelerID, models.RoleTraveler, b.ID)
	if err != nil {
		t.Fatalf("repeated cancel must succeed: %v", err)
	}
	if !second.CancelledAt.Equal(firstAt) {
		t.Error("repeated cancel must not move CancelledAt")
	}
}

// ======================================================
// Get
// ======================================================

func TestGetBookingAuthorization(t *testing.T) {
	repo := newMockRepo()
	seedProperty(repo)
	b := repo.addBooking(models.Booking{
		PropertyID: 10,
		TravelerID: travelerID,
		Status:     string(domain.StatusPending),
	})
	uc := NewGetBooking(repo)

	if _, err := uc.Execute(context.Background(), travelerID, models.RoleTraveler, b.ID); err != nil {
		t.Fatalf("traveler must see own booking: %v", err)
	}
	if _, err := uc.Execute(context.Background(), ownerID, models.RoleOwner, b.ID); err != nil {
		t.Fatalf("owner must see booking on own property: %v", err)
	}

	_, err := uc.Execute(context.Background(), strangerID, models.RoleTraveler, b.ID)
	wantBusiness(t, err, "not_authorized")
}

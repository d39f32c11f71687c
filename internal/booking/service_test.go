package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentshare/rentshare-backend/internal/events"
	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
	"github.com/rentshare/rentshare-backend/internal/user"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

//
// In-memory fakes. The repository shares its classification with the real
// store through Classify, so list semantics are exercised for real.
//

type fakeRepo struct {
	bookings map[int64]*Booking
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[int64]*Booking{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) ListByActor(_ context.Context, actorID int64, role Role, state State, now time.Time, page Page) ([]*Booking, error) {
	var matched []*Booking
	for _, b := range r.bookings {
		if role == AsBooker && b.BookerID == actorID {
			matched = append(matched, b)
		}
		if role == AsOwner && b.ItemOwnerID == actorID {
			matched = append(matched, b)
		}
	}
	return Classify(matched, state, now, page), nil
}

func (r *fakeRepo) ListByItemID(_ context.Context, itemID int64) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListFinishedApproved(_ context.Context, bookerID, itemID int64, now time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID && b.Status == StatusApproved && b.End.Before(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CancelOverdueWaiting(_ context.Context, now time.Time) ([]*Booking, error) {
	var canceled []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusWaiting && b.End.Before(now) {
			b.Status = StatusCanceled
			canceled = append(canceled, b)
		}
	}
	return canceled, nil
}

type fakeUserService struct {
	users map[int64]*user.User
}

func (s *fakeUserService) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserService) GetAll(context.Context) ([]*user.User, error) { return nil, nil }
func (s *fakeUserService) Create(context.Context, user.CreateRequest) (*user.User, error) {
	return nil, nil
}
func (s *fakeUserService) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	return nil, nil
}
func (s *fakeUserService) Delete(context.Context, int64) error { return nil }

type fakeItemService struct {
	items map[int64]*item.Item
}

func (s *fakeItemService) GetByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

func (s *fakeItemService) GetByOwner(context.Context, int64, int, int) ([]*item.Item, error) {
	return nil, nil
}
func (s *fakeItemService) GetByRequestIDs(context.Context, []int64) ([]*item.Item, error) {
	return nil, nil
}
func (s *fakeItemService) Create(context.Context, int64, item.CreateRequest) (*item.Item, error) {
	return nil, nil
}
func (s *fakeItemService) Update(context.Context, int64, int64, item.UpdateRequest) (*item.Item, error) {
	return nil, nil
}
func (s *fakeItemService) Search(context.Context, string, int, int) ([]*item.Item, error) {
	return nil, nil
}

// recordingPublisher captures routing keys so tests can assert on emitted
// events without a broker.
type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ any) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) Close() {}

type serviceFixture struct {
	svc       Service
	repo      *fakeRepo
	publisher *recordingPublisher
}

// Fixture users: 1 owns item 10 (available) and item 11 (unavailable);
// 2 is a regular booker.
func newServiceFixture() *serviceFixture {
	repo := newFakeRepo()
	users := &fakeUserService{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner", Email: "owner@example.com"},
		2: {ID: 2, Name: "booker", Email: "booker@example.com"},
		3: {ID: 3, Name: "stranger", Email: "stranger@example.com"},
	}}
	items := &fakeItemService{items: map[int64]*item.Item{
		10: {ID: 10, Name: "drill", Available: true, OwnerID: 1},
		11: {ID: 11, Name: "saw", Available: false, OwnerID: 1},
	}}
	publisher := &recordingPublisher{}

	return &serviceFixture{
		svc:       NewService(repo, items, users, clock.Fixed(testNow), publisher, zap.NewNop()),
		repo:      repo,
		publisher: publisher,
	}
}

func (f *serviceFixture) createWaiting(t *testing.T) *Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), 2, CreateRequest{
		ItemID: 10,
		Start:  testNow.Add(24 * time.Hour),
		End:    testNow.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	t.Run("Create: Success", func(t *testing.T) {
		f := newServiceFixture()

		b := f.createWaiting(t)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, int64(2), b.BookerID)
		assert.Equal(t, int64(10), b.ItemID)
		assert.Equal(t, int64(1), b.ItemOwnerID)
		assert.Equal(t, []string{events.BookingCreated}, f.publisher.keys)
	})

	t.Run("Create: Unknown booker", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.svc.Create(context.Background(), 99, CreateRequest{
			ItemID: 10,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("Create: Unknown item", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.svc.Create(context.Background(), 2, CreateRequest{
			ItemID: 99,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("Create: Unavailable item", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.svc.Create(context.Background(), 2, CreateRequest{
			ItemID: 11,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("Create: Owner cannot book own item", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.svc.Create(context.Background(), 1, CreateRequest{
			ItemID: 10,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		// Reads like the item does not exist for the owner-as-booker.
		assert.ErrorIs(t, err, ErrNoPermission)
	})

	t.Run("Create: Start must be before end", func(t *testing.T) {
		f := newServiceFixture()

		start := testNow.Add(2 * time.Hour)
		for _, end := range []time.Time{start, start.Add(-time.Hour)} {
			_, err := f.svc.Create(context.Background(), 2, CreateRequest{
				ItemID: 10,
				Start:  start,
				End:    end,
			})
			assert.ErrorIs(t, err, ErrInvalidTime)
		}
	})
}

func TestDecideBooking(t *testing.T) {
	approve := func(v bool) UpdateRequest { b := v; return UpdateRequest{Approved: &b} }

	t.Run("Decide: Owner approves", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		updated, err := f.svc.Update(context.Background(), b.ID, 1, approve(true))
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, updated.Status)
		assert.Equal(t, []string{events.BookingCreated, events.BookingApproved}, f.publisher.keys)
	})

	t.Run("Decide: Re-approving is blocked", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		_, err := f.svc.Update(context.Background(), b.ID, 1, approve(true))
		require.NoError(t, err)

		_, err = f.svc.Update(context.Background(), b.ID, 1, approve(true))
		assert.ErrorIs(t, err, ErrIllegalStatus)
	})

	t.Run("Decide: Flipping a decision is allowed", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		_, err := f.svc.Update(context.Background(), b.ID, 1, approve(true))
		require.NoError(t, err)

		updated, err := f.svc.Update(context.Background(), b.ID, 1, approve(false))
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, updated.Status)

		updated, err = f.svc.Update(context.Background(), b.ID, 1, approve(true))
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, updated.Status)
	})

	t.Run("Decide: Booker cannot decide", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		_, err := f.svc.Update(context.Background(), b.ID, 2, approve(true))
		assert.ErrorIs(t, err, ErrNoPermission)
	})

	t.Run("Decide: Neither decision nor amendment", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		_, err := f.svc.Update(context.Background(), b.ID, 1, UpdateRequest{})
		assert.ErrorIs(t, err, ErrNothingToDo)
	})
}

func TestAmendBooking(t *testing.T) {
	t.Run("Amend: Booker moves the times", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		newStart := testNow.Add(72 * time.Hour)
		newEnd := testNow.Add(96 * time.Hour)
		updated, err := f.svc.Update(context.Background(), b.ID, 2, UpdateRequest{
			Amendment: &Amendment{Start: &newStart, End: &newEnd},
		})
		require.NoError(t, err)
		assert.True(t, updated.Start.Equal(newStart))
		assert.True(t, updated.End.Equal(newEnd))
		assert.Equal(t, []string{events.BookingCreated, events.BookingAmended}, f.publisher.keys)
	})

	t.Run("Amend: Owner cannot amend", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		newStart := testNow.Add(72 * time.Hour)
		_, err := f.svc.Update(context.Background(), b.ID, 1, UpdateRequest{
			Amendment: &Amendment{Start: &newStart},
		})
		assert.ErrorIs(t, err, ErrNoPermission)
	})

	t.Run("Amend: Switching to an unavailable item fails", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		target := int64(11)
		_, err := f.svc.Update(context.Background(), b.ID, 2, UpdateRequest{
			Amendment: &Amendment{ItemID: &target},
		})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestGetBooking(t *testing.T) {
	t.Run("Get: Participants see it, outsiders get not-found", func(t *testing.T) {
		f := newServiceFixture()
		b := f.createWaiting(t)

		for _, actorID := range []int64{1, 2} {
			got, err := f.svc.GetByID(context.Background(), b.ID, actorID)
			require.NoError(t, err)
			assert.Equal(t, b.ID, got.ID)
		}

		_, err := f.svc.GetByID(context.Background(), b.ID, 3)
		assert.ErrorIs(t, err, ErrNoPermission)
	})

	t.Run("Get: Missing booking", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.svc.GetByID(context.Background(), 42, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListByState(t *testing.T) {
	f := newServiceFixture()

	// Past approved, running, future waiting.
	mk := func(start, end time.Time, status Status) {
		b := &Booking{
			Start: start, End: end, ItemID: 10, BookerID: 2, Status: status,
			ItemOwnerID: 1, ItemAvailable: true,
		}
		require.NoError(t, f.repo.Create(context.Background(), b))
	}
	day := 24 * time.Hour
	mk(testNow.Add(-3*day), testNow.Add(-2*day), StatusApproved)
	mk(testNow.Add(-day), testNow.Add(day), StatusApproved)
	mk(testNow.Add(day), testNow.Add(2*day), StatusWaiting)

	page := Page{From: 0, Size: 10}

	t.Run("List: As booker", func(t *testing.T) {
		got, err := f.svc.ListByState(context.Background(), 2, AsBooker, StateAll, page)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = f.svc.ListByState(context.Background(), 2, AsBooker, StateCurrent, page)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, StatusApproved, got[0].Status)
	})

	t.Run("List: As owner", func(t *testing.T) {
		got, err := f.svc.ListByState(context.Background(), 1, AsOwner, StateWaiting, page)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("List: Unknown user", func(t *testing.T) {
		_, err := f.svc.ListByState(context.Background(), 99, AsBooker, StateAll, page)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestSummarizeItem(t *testing.T) {
	f := newServiceFixture()
	day := 24 * time.Hour

	mk := func(start, end time.Time, status Status) int64 {
		b := &Booking{
			Start: start, End: end, ItemID: 10, BookerID: 2, Status: status,
			ItemOwnerID: 1, ItemAvailable: true,
		}
		require.NoError(t, f.repo.Create(context.Background(), b))
		return b.ID
	}
	pastID := mk(testNow.Add(-2*day), testNow.Add(-day), StatusApproved)
	mk(testNow.Add(day), testNow.Add(2*day), StatusRejected)
	farID := mk(testNow.Add(3*day), testNow.Add(4*day), StatusWaiting)

	t.Run("Summarize: Rejected booking counts when dropped ones are kept", func(t *testing.T) {
		summary, err := f.svc.SummarizeItem(context.Background(), 10, false)
		require.NoError(t, err)
		require.NotNil(t, summary.Last)
		require.NotNil(t, summary.Next)
		assert.Equal(t, pastID, summary.Last.ID)
		assert.Equal(t, int64(2), summary.Next.ID)
		assert.Len(t, summary.Bookings, 3)
	})

	t.Run("Summarize: Dropped bookings excluded on request", func(t *testing.T) {
		summary, err := f.svc.SummarizeItem(context.Background(), 10, true)
		require.NoError(t, err)
		require.NotNil(t, summary.Next)
		assert.Equal(t, farID, summary.Next.ID)
		assert.Len(t, summary.Bookings, 2)
	})
}

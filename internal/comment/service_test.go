package comment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
	"github.com/rentshare/rentshare-backend/internal/user"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	comments map[int64]*Comment
	nextID   int64
}

func (r *fakeRepo) Create(_ context.Context, c *Comment) error {
	r.nextID++
	c.ID = r.nextID
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) ListByItemID(_ context.Context, itemID int64) ([]*Comment, error) {
	var out []*Comment
	for _, c := range r.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
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

// fakeBookings only answers the finished-approved gate; the rest of the
// interface is unused by comments.
type fakeBookings struct {
	finished []*booking.Booking
}

func (r *fakeBookings) Create(context.Context, *booking.Booking) error { return nil }
func (r *fakeBookings) GetByID(context.Context, int64) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}
func (r *fakeBookings) Update(context.Context, *booking.Booking) error { return nil }
func (r *fakeBookings) ListByActor(context.Context, int64, booking.Role, booking.State, time.Time, booking.Page) ([]*booking.Booking, error) {
	return nil, nil
}
func (r *fakeBookings) ListByItemID(context.Context, int64) ([]*booking.Booking, error) {
	return nil, nil
}

func (r *fakeBookings) ListFinishedApproved(_ context.Context, bookerID, itemID int64, now time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.finished {
		if b.BookerID == bookerID && b.ItemID == itemID && b.Status == booking.StatusApproved && b.End.Before(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookings) CancelOverdueWaiting(context.Context, time.Time) ([]*booking.Booking, error) {
	return nil, nil
}

// Fixture: user 1 owns item 10; user 2 finished an approved booking of it;
// user 3 never booked it.
func newFixture() (Service, *fakeBookings) {
	repo := &fakeRepo{comments: map[int64]*Comment{}}
	users := &fakeUserService{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner"},
		2: {ID: 2, Name: "renter"},
		3: {ID: 3, Name: "bystander"},
	}}
	items := &fakeItemService{items: map[int64]*item.Item{
		10: {ID: 10, Name: "drill", Available: true, OwnerID: 1},
	}}
	bookings := &fakeBookings{finished: []*booking.Booking{
		{
			ID: 1, ItemID: 10, BookerID: 2, Status: booking.StatusApproved,
			Start: testNow.Add(-48 * time.Hour), End: testNow.Add(-24 * time.Hour),
		},
	}}

	return NewService(repo, users, items, bookings, clock.Fixed(testNow)), bookings
}

func TestAddComment(t *testing.T) {
	t.Run("Add: Renter with finished booking succeeds", func(t *testing.T) {
		svc, _ := newFixture()

		c, err := svc.Add(context.Background(), 2, 10, "worked great")
		require.NoError(t, err)
		assert.Equal(t, "worked great", c.Text)
		assert.Equal(t, "renter", c.AuthorName)
		assert.True(t, c.Created.Equal(testNow))
	})

	t.Run("Add: Owner cannot comment own item", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(context.Background(), 1, 10, "my item is great")
		assert.ErrorIs(t, err, ErrOwnItem)
	})

	t.Run("Add: Never booked", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(context.Background(), 3, 10, "looks nice")
		assert.ErrorIs(t, err, ErrNeverBooked)
	})

	t.Run("Add: Booking not finished yet", func(t *testing.T) {
		svc, bookings := newFixture()
		bookings.finished[0].End = testNow.Add(time.Hour)

		_, err := svc.Add(context.Background(), 2, 10, "too early")
		assert.ErrorIs(t, err, ErrNeverBooked)
	})

	t.Run("Add: Rejected booking does not qualify", func(t *testing.T) {
		svc, bookings := newFixture()
		bookings.finished[0].Status = booking.StatusRejected

		_, err := svc.Add(context.Background(), 2, 10, "never got it")
		assert.ErrorIs(t, err, ErrNeverBooked)
	})

	t.Run("Add: Blank text", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(context.Background(), 2, 10, "   ")
		assert.ErrorIs(t, err, ErrTextRequired)
	})

	t.Run("Add: Unknown author", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(context.Background(), 99, 10, "hello")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("Add: Unknown item", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(context.Background(), 2, 99, "hello")
		assert.ErrorIs(t, err, item.ErrNotFound)
	})
}

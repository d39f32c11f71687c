package booking

import "github.com/rentshare/rentshare-backend/internal/item"

// Pure identity checks. Each returns the specific error kind the caller
// surfaces unchanged.

func requireOwner(actorID int64, b *Booking) error {
	if actorID != b.ItemOwnerID {
		return ErrNoPermission
	}
	return nil
}

func requireBooker(actorID int64, b *Booking) error {
	if actorID != b.BookerID {
		return ErrNoPermission
	}
	return nil
}

func requireParticipant(actorID int64, b *Booking) error {
	if actorID != b.ItemOwnerID && actorID != b.BookerID {
		return ErrNoPermission
	}
	return nil
}

// requireNotOwner blocks owners from booking their own items.
func requireNotOwner(actorID int64, it *item.Item) error {
	if it.OwnerID == actorID {
		return ErrNoPermission
	}
	return nil
}

func requireAvailable(it *item.Item) error {
	if !it.Available {
		return ErrUnavailable
	}
	return nil
}

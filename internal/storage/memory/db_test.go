package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db := New(Config{L: logger.Discard()})

	for n := 1; n <= 3; n++ {
		require.NoError(t, db.SaveRoom(context.Background(), &hotel.Room{Number: n, Category: hotel.Single, Rate: 100}))
	}

	return db
}

func TestCommitAppliesBookingAndRoomStatus(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	room, err := db.FindRoom(ctx, 2)
	require.NoError(t, err)

	booking := &hotel.Booking{ID: 1, Customer: &hotel.Customer{ID: 1, Name: "Alice"}, Room: room}

	trxCtx, err := db.BeginTransaction(ctx)
	require.NoError(t, err)
	require.NoError(t, db.SaveBooking(trxCtx, booking))
	require.NoError(t, db.MarkRoomBooked(trxCtx, 2))

	bookings, err := db.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings, "staged booking must not be visible before commit")
	assert.False(t, room.Booked)

	require.NoError(t, db.CommitTransaction(trxCtx))

	bookings, err = db.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*hotel.Booking{booking}, bookings)
	assert.True(t, room.Booked)

	count, err := db.CountBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	trxCtx, err := db.BeginTransaction(ctx)
	require.NoError(t, err)
	require.NoError(t, db.SaveBooking(trxCtx, &hotel.Booking{ID: 1}))
	require.NoError(t, db.MarkRoomBooked(trxCtx, 1))
	require.NoError(t, db.RollbackTransaction(trxCtx))

	bookings, err := db.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	room, err := db.FindRoom(ctx, 1)
	require.NoError(t, err)
	assert.False(t, room.Booked)

	require.ErrorIs(t, db.CommitTransaction(trxCtx), ErrTransactionNotFound)
}

func TestCommitRefusesAlreadyBookedRoom(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	first, err := db.BeginTransaction(ctx)
	require.NoError(t, err)
	second, err := db.BeginTransaction(ctx)
	require.NoError(t, err)

	require.NoError(t, db.MarkRoomBooked(first, 3))
	require.NoError(t, db.MarkRoomBooked(second, 3))
	require.NoError(t, db.CommitTransaction(first))

	require.ErrorIs(t, db.CommitTransaction(second), hotel.ErrRoomBooked)
}

func TestWritesRequireTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.ErrorIs(t, db.SaveBooking(ctx, &hotel.Booking{ID: 1}), ErrTransactionIDNotFoundInCtx)
	require.ErrorIs(t, db.MarkRoomBooked(ctx, 1), ErrTransactionIDNotFoundInCtx)
}

func TestMarkUnknownRoom(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	trxCtx, err := db.BeginTransaction(ctx)
	require.NoError(t, err)

	require.ErrorIs(t, db.MarkRoomBooked(trxCtx, 42), hotel.ErrRoomNotFound)
}

func TestFindRoom(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for _, number := range []int{0, 4, -1} {
		_, err := db.FindRoom(ctx, number)
		require.ErrorIs(t, err, hotel.ErrRoomNotFound)
	}

	room, err := db.FindRoom(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, room.Number)
}

func TestSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	rooms, err := db.Rooms(ctx)
	require.NoError(t, err)

	rooms[0] = nil

	again, err := db.Rooms(ctx)
	require.NoError(t, err)
	assert.NotNil(t, again[0])

	require.NoError(t, db.SaveCustomer(ctx, &hotel.Customer{ID: 1}))

	count, err := db.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

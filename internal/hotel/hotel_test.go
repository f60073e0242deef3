package hotel_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/sequence"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/storage/memory"
)

func newHotel(t *testing.T, layout ...hotel.RoomLayout) *hotel.Hotel {
	t.Helper()

	l := logger.Discard()
	db := memory.New(memory.Config{L: l})

	h, err := hotel.New(
		context.Background(),
		l,
		db,
		hotel.IDs{Customers: sequence.New(db.CountCustomers), Bookings: sequence.New(db.CountBookings)},
		"Test Hotel",
		layout...,
	)
	require.NoError(t, err)

	return h
}

func findRoom(t *testing.T, h *hotel.Hotel, number int) *hotel.Room {
	t.Helper()

	room, err := h.FindRoom(context.Background(), number)
	require.NoError(t, err)

	return room
}

func TestNewInitializesDefaultRooms(t *testing.T) {
	h := newHotel(t)

	rooms, err := h.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 100)

	for i, room := range rooms {
		assert.Equal(t, i+1, room.Number)
		assert.False(t, room.Booked)

		if room.Number <= 50 {
			assert.Equal(t, hotel.Single, room.Category)
			assert.Equal(t, hotel.Money(100), room.Rate)
		} else {
			assert.Equal(t, hotel.Double, room.Category)
			assert.Equal(t, hotel.Money(150), room.Rate)
		}
	}

	assert.Equal(t, "Test Hotel", h.Name())
}

func TestNewRejectsBadLayout(t *testing.T) {
	l := logger.Discard()
	db := memory.New(memory.Config{L: l})

	_, err := hotel.New(
		context.Background(),
		l,
		db,
		hotel.IDs{Customers: sequence.New(db.CountCustomers), Bookings: sequence.New(db.CountBookings)},
		"Broken",
		hotel.RoomLayout{From: 1, To: 10, Category: hotel.Single, Rate: 100},
		hotel.RoomLayout{From: 5, To: 12, Category: "Suite", Rate: 0},
	)
	require.Error(t, err)

	inputErr := hotel.IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Contains(t, inputErr.Fields(), "layout[1]")
	assert.Contains(t, inputErr.Fields(), "layout[1].category")
	assert.Contains(t, inputErr.Fields(), "layout[1].rate")
}

func TestRegisterCustomerSequentialIDs(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	for want := 1; want <= 3; want++ {
		c, err := h.RegisterCustomer(ctx, "Guest", "555", "g@x.com")
		require.NoError(t, err)
		assert.Equal(t, want, c.ID)
	}

	customers, err := h.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestBookRoom(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	alice, err := h.RegisterCustomer(ctx, "Alice", "555-1234", "a@x.com")
	require.NoError(t, err)

	room := findRoom(t, h, 1)

	booking, err := h.BookRoom(ctx, alice, room, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, 1, booking.ID)
	assert.Equal(t, 1, booking.Room.Number)
	assert.Equal(t, "Alice", booking.Customer.Name)
	assert.True(t, room.Booked)

	bookings, err := h.Bookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	again, err := h.BookRoom(ctx, alice, room, "2024-06-05", "2024-06-06")
	require.ErrorIs(t, err, hotel.ErrRoomBooked)
	assert.Nil(t, again)

	bookings, err = h.Bookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookRoomSequentialIDs(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	c, err := h.RegisterCustomer(ctx, "Bob", "1", "b@x.com")
	require.NoError(t, err)

	for i, number := range []int{7, 60, 3} {
		booking, err := h.BookRoom(ctx, c, findRoom(t, h, number), "a", "b")
		require.NoError(t, err)
		assert.Equal(t, i+1, booking.ID)
	}

	_, err = h.BookRoom(ctx, c, findRoom(t, h, 60), "a", "b")
	require.ErrorIs(t, err, hotel.ErrRoomBooked)

	booking, err := h.BookRoom(ctx, c, findRoom(t, h, 61), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 4, booking.ID)
}

func TestBookRoomMissingReferences(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	_, err := h.BookRoom(ctx, nil, findRoom(t, h, 1), "a", "b")
	require.ErrorIs(t, err, hotel.ErrMissingReference)

	_, err = h.BookRoom(ctx, &hotel.Customer{ID: 1}, &hotel.Room{Number: 500}, "a", "b")
	require.ErrorIs(t, err, hotel.ErrRoomNotFound)
}

func TestFindRoomBoundaries(t *testing.T) {
	h := newHotel(t)

	for _, number := range []int{0, 101, -5} {
		room, err := h.FindRoom(context.Background(), number)
		require.ErrorIs(t, err, hotel.ErrRoomNotFound)
		assert.Nil(t, room)
	}

	assert.Equal(t, 100, findRoom(t, h, 100).Number)
}

func TestAvailableRooms(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	c, err := h.RegisterCustomer(ctx, "Alice", "555-1234", "a@x.com")
	require.NoError(t, err)

	_, err = h.BookRoom(ctx, c, findRoom(t, h, 1), "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	singles, err := h.AvailableRooms(ctx, hotel.Single)
	require.NoError(t, err)
	require.Len(t, singles, 49)
	assert.Equal(t, 2, singles[0].Number)
	assert.Equal(t, 50, singles[len(singles)-1].Number)

	doubles, err := h.AvailableRooms(ctx, hotel.Double)
	require.NoError(t, err)
	assert.Len(t, doubles, 50)

	all, err := h.AvailableRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 99)

	for _, room := range all {
		assert.NotEqual(t, 1, room.Number)
	}
}

func TestListRooms(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t, hotel.RoomLayout{From: 1, To: 2, Category: hotel.Single, Rate: 100},
		hotel.RoomLayout{From: 3, To: 3, Category: hotel.Double, Rate: 150})

	c, err := h.RegisterCustomer(ctx, "Alice", "555-1234", "a@x.com")
	require.NoError(t, err)

	_, err = h.BookRoom(ctx, c, findRoom(t, h, 1), "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, h.ListRooms(ctx, &buf, hotel.Single))
	assert.Equal(t, "Room 2 (Single) - $100/night - Available\n", buf.String())

	buf.Reset()
	require.NoError(t, h.ListRooms(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Room 2 (Single) - $100/night - Available",
		"Room 3 (Double) - $150/night - Available",
	}, lines)
}

func TestAddRoomAndCustomerAppendOnly(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t, hotel.RoomLayout{From: 1, To: 1, Category: hotel.Single, Rate: 100})

	require.NoError(t, h.AddRoom(ctx, &hotel.Room{Number: 1, Category: hotel.Double, Rate: 150}))
	require.NoError(t, h.AddCustomer(ctx, &hotel.Customer{ID: 1, Name: "A"}))
	require.NoError(t, h.AddCustomer(ctx, &hotel.Customer{ID: 1, Name: "A"}))

	rooms, err := h.Rooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	customers, err := h.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	// lookup returns the first room registered under a number
	assert.Equal(t, hotel.Single, findRoom(t, h, 1).Category)
}

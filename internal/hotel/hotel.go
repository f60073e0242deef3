package hotel

import (
	"context"
	"fmt"
	"io"

	"github.com/avstrong/hotel/internal/logger"
)

type IDGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type storageReader interface {
	Rooms(ctx context.Context) ([]*Room, error)
	FindRoom(ctx context.Context, number int) (*Room, error)
	Customers(ctx context.Context) ([]*Customer, error)
	Bookings(ctx context.Context) ([]*Booking, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveRoom(ctx context.Context, room *Room) error
	SaveCustomer(ctx context.Context, customer *Customer) error
	SaveBooking(ctx context.Context, booking *Booking) error
	MarkRoomBooked(ctx context.Context, number int) error
}

type storage interface {
	storageReader
	storageWriter
}

// IDs holds the sequences for customers and bookings.
type IDs struct {
	Customers IDGenerator
	Bookings  IDGenerator
}

// Hotel owns the room inventory, the registered customers and the bookings
// of a single session.
type Hotel struct {
	l       *logger.Logger
	name    string
	storage storage
	ids     IDs
	layout  []RoomLayout
}

// New builds a hotel and populates its rooms. With no layout the default
// 50 Single + 50 Double inventory is used.
func New(ctx context.Context, l *logger.Logger, storage storage, ids IDs, name string, layout ...RoomLayout) (*Hotel, error) {
	if len(layout) == 0 {
		layout = DefaultLayout()
	}

	if err := ValidateLayout(layout); err != nil {
		return nil, fmt.Errorf("validate room layout: %w", err)
	}

	h := &Hotel{
		l:       l,
		name:    name,
		storage: storage,
		ids:     ids,
		layout:  layout,
	}

	if err := h.initializeRooms(ctx); err != nil {
		return nil, fmt.Errorf("initialize rooms: %w", err)
	}

	return h, nil
}

func (h *Hotel) Name() string {
	return h.name
}

func (h *Hotel) initializeRooms(ctx context.Context) error {
	var count int

	for _, block := range h.layout {
		for n := block.From; n <= block.To; n++ {
			//nolint:exhaustruct
			if err := h.AddRoom(ctx, &Room{Number: n, Category: block.Category, Rate: block.Rate}); err != nil {
				return err
			}

			count++
		}
	}

	h.l.LogDebug("Initialized %d rooms for %s", count, h.name)

	return nil
}

func (h *Hotel) AddRoom(ctx context.Context, room *Room) error {
	if err := h.storage.SaveRoom(ctx, room); err != nil {
		return fmt.Errorf("save room %d to storage: %w", room.Number, err)
	}

	return nil
}

func (h *Hotel) AddCustomer(ctx context.Context, customer *Customer) error {
	if err := h.storage.SaveCustomer(ctx, customer); err != nil {
		return fmt.Errorf("save customer %d to storage: %w", customer.ID, err)
	}

	return nil
}

// RegisterCustomer assigns the next customer id and stores the customer.
// Contact details are accepted as given.
func (h *Hotel) RegisterCustomer(ctx context.Context, name, phone, email string) (*Customer, error) {
	id, err := h.ids.Customers.GetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("customer id: %w: %w", ErrNextID, err)
	}

	customer := &Customer{
		ID:    id,
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := h.AddCustomer(ctx, customer); err != nil {
		return nil, err
	}

	h.l.LogInfo("Customer %d registered", customer.ID)

	return customer, nil
}

func (h *Hotel) FindRoom(ctx context.Context, number int) (*Room, error) {
	room, err := h.storage.FindRoom(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("find room %d: %w", number, err)
	}

	return room, nil
}

// BookRoom books an available room for the customer. It returns
// ErrRoomBooked, and records nothing, when the room is already booked.
func (h *Hotel) BookRoom(
	ctx context.Context,
	customer *Customer,
	room *Room,
	checkIn, checkOut string,
) (booking *Booking, err error) {
	if customer == nil || room == nil {
		return nil, ErrMissingReference
	}

	stored, err := h.FindRoom(ctx, room.Number)
	if err != nil {
		return nil, err
	}

	if stored.Booked {
		h.l.LogInfo("Room %d refused for customer %d: already booked", stored.Number, customer.ID)

		return nil, fmt.Errorf("book room %d: %w", stored.Number, ErrRoomBooked)
	}

	id, err := h.ids.Bookings.GetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking id: %w: %w", ErrNextID, err)
	}

	booking = &Booking{
		ID:       id,
		Customer: customer,
		Room:     stored,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}

	ctx, err = h.storage.BeginTransaction(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if err := h.storage.RollbackTransaction(ctx); err != nil {
				h.l.LogErrorf("Could not rollback booking transaction after panic %v", p)
			}

			panic(p)
		}

		if err != nil {
			if rbErr := h.storage.RollbackTransaction(ctx); rbErr != nil {
				h.l.LogErrorf("Could not rollback booking transaction after error %v", rbErr.Error())
			}

			h.l.LogDebug("Booking transaction has been roll backed after error")

			booking = nil

			return
		}

		if err = h.storage.CommitTransaction(ctx); err != nil {
			err = fmt.Errorf("commit booking transaction: %w", err)
			booking = nil

			return
		}

		h.l.LogInfo("Booking %d created: room %d for customer %d", booking.ID, booking.Room.Number, customer.ID)
	}()

	if err = h.storage.SaveBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking to storage: %w", err)
	}

	if err = h.storage.MarkRoomBooked(ctx, stored.Number); err != nil {
		return nil, fmt.Errorf("mark room %d booked: %w", stored.Number, err)
	}

	return booking, nil
}

// AvailableRooms returns unbooked rooms in number order, limited to the
// given categories when any are passed.
func (h *Hotel) AvailableRooms(ctx context.Context, categories ...Category) ([]*Room, error) {
	rooms, err := h.storage.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rooms from storage: %w", err)
	}

	available := make([]*Room, 0, len(rooms))

	for _, room := range rooms {
		if room.Booked || !matchCategory(room.Category, categories) {
			continue
		}

		available = append(available, room)
	}

	return available, nil
}

func (h *Hotel) ListRooms(ctx context.Context, w io.Writer, categories ...Category) error {
	rooms, err := h.AvailableRooms(ctx, categories...)
	if err != nil {
		return err
	}

	for _, room := range rooms {
		if _, err := fmt.Fprintln(w, room); err != nil {
			return fmt.Errorf("write room %d: %w", room.Number, err)
		}
	}

	return nil
}

func (h *Hotel) Rooms(ctx context.Context) ([]*Room, error) {
	return h.storage.Rooms(ctx)
}

func (h *Hotel) Customers(ctx context.Context) ([]*Customer, error) {
	return h.storage.Customers(ctx)
}

func (h *Hotel) Bookings(ctx context.Context) ([]*Booking, error) {
	return h.storage.Bookings(ctx)
}

func matchCategory(c Category, categories []Category) bool {
	if len(categories) == 0 {
		return true
	}

	for _, want := range categories {
		if c == want {
			return true
		}
	}

	return false
}

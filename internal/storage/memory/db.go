package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

type Config struct {
	L *logger.Logger
}

type transaction struct {
	id          string
	bookings    []*hotel.Booking
	bookedRooms map[int]struct{}
}

// DB keeps the hotel state for the lifetime of the process.
type DB struct {
	mu           sync.Mutex
	l            *logger.Logger
	rooms        []*hotel.Room
	roomsByNum   map[int]*hotel.Room
	customers    []*hotel.Customer
	bookings     []*hotel.Booking
	transactions map[string]*transaction
	nextTrxID    int64
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:            conf.L,
		roomsByNum:   make(map[int]*hotel.Room),
		transactions: make(map[string]*transaction),
	}
}

func (db *DB) BeginTransaction(ctx context.Context) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:          trxID,
		bookings:    nil,
		bookedRooms: make(map[int]struct{}),
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for number := range trx.bookedRooms {
		room, ok := db.roomsByNum[number]
		if !ok {
			return fmt.Errorf("room %d: %w", number, hotel.ErrRoomNotFound)
		}

		if room.Booked {
			return fmt.Errorf("room %d: %w", number, hotel.ErrRoomBooked)
		}
	}

	for number := range trx.bookedRooms {
		db.roomsByNum[number].Booked = true
	}

	db.bookings = append(db.bookings, trx.bookings...)

	delete(db.transactions, trx.id)

	db.l.LogDebug("Transaction %s committed", trx.id)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	delete(db.transactions, trx.id)

	db.l.LogDebug("Transaction %s rolled back", trx.id)

	return nil
}

// transaction must be called with db.mu held.
func (db *DB) transaction(ctx context.Context) (*transaction, error) {
	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return nil, ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return nil, fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	return trx, nil
}

func (db *DB) SaveRoom(_ context.Context, room *hotel.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.rooms = append(db.rooms, room)

	if _, ok := db.roomsByNum[room.Number]; !ok {
		db.roomsByNum[room.Number] = room
	}

	return nil
}

func (db *DB) SaveCustomer(_ context.Context, customer *hotel.Customer) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.customers = append(db.customers, customer)

	return nil
}

func (db *DB) SaveBooking(ctx context.Context, booking *hotel.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	trx.bookings = append(trx.bookings, booking)

	return nil
}

func (db *DB) MarkRoomBooked(ctx context.Context, number int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	if _, ok := db.roomsByNum[number]; !ok {
		return fmt.Errorf("room %d: %w", number, hotel.ErrRoomNotFound)
	}

	trx.bookedRooms[number] = struct{}{}

	return nil
}

func (db *DB) Rooms(_ context.Context) ([]*hotel.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return append([]*hotel.Room(nil), db.rooms...), nil
}

// FindRoom scans the inventory in order and returns the first room with
// the given number.
func (db *DB) FindRoom(_ context.Context, number int) (*hotel.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, room := range db.rooms {
		if room.Number == number {
			return room, nil
		}
	}

	return nil, hotel.ErrRoomNotFound
}

func (db *DB) Customers(_ context.Context) ([]*hotel.Customer, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return append([]*hotel.Customer(nil), db.customers...), nil
}

func (db *DB) Bookings(_ context.Context) ([]*hotel.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return append([]*hotel.Booking(nil), db.bookings...), nil
}

func (db *DB) CountCustomers(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return len(db.customers), nil
}

func (db *DB) CountBookings(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return len(db.bookings), nil
}

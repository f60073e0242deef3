package hotel

import (
	"fmt"
	"strconv"
)

type Category string

const (
	Single Category = "Single"
	Double Category = "Double"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Single, Double:
		return Category(s), nil
	default:
		return "", fmt.Errorf("category %q: %w", s, ErrUnknownCategory)
	}
}

// Money is an amount in whole currency units.
type Money int64

func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// Room is one hotel room. Booked is flipped to true only by Hotel.BookRoom.
type Room struct {
	Number   int      `json:"number"`
	Category Category `json:"category"`
	Rate     Money    `json:"rate"`
	Booked   bool     `json:"booked"`
}

func (r *Room) String() string {
	status := "Available"
	if r.Booked {
		status = "Booked"
	}

	return fmt.Sprintf("Room %d (%s) - $%s/night - %s", r.Number, r.Category, r.Rate, status)
}

type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer ID: %d, Name: %s, Phone: %s, Email: %s", c.ID, c.Name, c.Phone, c.Email)
}

// Booking links a customer to a room. Dates are kept as entered.
type Booking struct {
	ID       int       `json:"id"`
	Customer *Customer `json:"customer"`
	Room     *Room     `json:"room"`
	CheckIn  string    `json:"check_in"`
	CheckOut string    `json:"check_out"`
}

func (b *Booking) String() string {
	return fmt.Sprintf(
		"Booking ID: %d, Customer: %s, Room: %d, Check-In: %s, Check-Out: %s",
		b.ID,
		b.Customer.Name,
		b.Room.Number,
		b.CheckIn,
		b.CheckOut,
	)
}

// RoomLayout describes a contiguous block of rooms sharing category and rate.
type RoomLayout struct {
	From     int
	To       int
	Category Category
	Rate     Money
}

func DefaultLayout() []RoomLayout {
	return []RoomLayout{
		{From: 1, To: 50, Category: Single, Rate: 100},   //nolint:gomnd
		{From: 51, To: 100, Category: Double, Rate: 150}, //nolint:gomnd
	}
}

// MaxRoomNumber bounds configured layouts.
const MaxRoomNumber = 100000

func ValidateLayout(layout []RoomLayout) error {
	inputErr := newInputError()

	for idx, block := range layout {
		field := fmt.Sprintf("layout[%d]", idx)

		if block.From < 1 {
			inputErr.addError(field+".from", "room numbers start at 1")
		}

		if block.From > block.To {
			inputErr.addError(field+".from", "from must not be greater than to")
		}

		if block.To > MaxRoomNumber {
			inputErr.addError(field+".to", fmt.Sprintf("room numbers end at %d", MaxRoomNumber))
		}

		if _, err := ParseCategory(string(block.Category)); err != nil {
			inputErr.addError(field+".category", "category must be Single or Double")
		}

		if block.Rate <= 0 {
			inputErr.addError(field+".rate", "rate must be positive")
		}

		for prev := 0; prev < idx; prev++ {
			if overlaps(layout[prev], block) {
				inputErr.addError(field, fmt.Sprintf("overlaps layout[%d]", prev))

				break
			}
		}
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func overlaps(a, b RoomLayout) bool {
	return a.From <= a.To && b.From <= b.To && a.From <= b.To && b.From <= a.To
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/payment"
)

var (
	ErrInputClosed = errors.New("input closed before the session finished")
	ErrPanic       = errors.New("panic")
)

type Conf struct {
	L   *logger.Logger
	In  io.Reader
	Out io.Writer
}

// Session walks one guest through registration, booking and payment.
type Session struct {
	l        *logger.Logger
	in       *bufio.Reader
	out      io.Writer
	werr     error
	hotel    *hotel.Hotel
	payments *payment.Processor
}

func New(conf Conf, h *hotel.Hotel, payments *payment.Processor) *Session {
	//nolint:exhaustruct
	return &Session{
		l:        conf.L,
		in:       bufio.NewReader(conf.In),
		out:      conf.Out,
		hotel:    h,
		payments: payments,
	}
}

// Run executes the dialogue. Invalid room type or room number end the
// session early with a nil error; only broken input or output is an error.
//
//nolint:funlen,cyclop // linear dialogue
func (s *Session) Run(ctx context.Context) (err error) {
	defer func() {
		if re := recover(); re != nil {
			rErr, ok := re.(error)
			if !ok {
				rErr = fmt.Errorf("%v: %w", re, ErrPanic)
			}

			s.l.LogErrorf("type: panic, error: %v", rErr)

			err = rErr
		}
	}()

	s.l.LogInfo("Session started")

	s.printf("\n🚪 Welcome to %s! 🚪\n\n", s.hotel.Name())

	if err := s.listCategory(ctx, "🏨 **Available %s Rooms%s:**", hotel.Single, "-"); err != nil {
		return err
	}

	s.println()

	if err := s.listCategory(ctx, "🏨 **Available %s Rooms%s:**", hotel.Double, "-"); err != nil {
		return err
	}

	s.printf("\n📋 **Please enter your details to book a room:**\n")

	customer, err := s.register(ctx)
	if err != nil {
		return err
	}

	category, ok, err := s.chooseCategory()
	if err != nil || !ok {
		return err
	}

	s.println()

	if err := s.listCategory(ctx, "✅ **Available %s Rooms%s:**", category, " - "); err != nil {
		return err
	}

	room, ok, err := s.chooseRoom(ctx)
	if err != nil || !ok {
		return err
	}

	checkIn, err := s.readLine("\n📅 Enter check-in date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	checkOut, err := s.readLine("📅 Enter check-out date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	booking, err := s.hotel.BookRoom(ctx, customer, room, checkIn, checkOut)

	switch {
	case err == nil:
		s.printf("\n✅ **Booking successful!** 🎉\n")
		s.println(booking)
	case errors.Is(err, hotel.ErrRoomBooked):
		s.printf("\n❌ Booking failed. Please try again.\n")
	default:
		return fmt.Errorf("book room %d: %w", room.Number, err)
	}

	method, err := s.choosePaymentMethod()
	if err != nil {
		return err
	}

	s.payments.Process(payment.Payment{Method: method, Amount: room.Rate})

	s.printf("\n📌 **Current Bookings:**\n")

	bookings, err := s.hotel.Bookings(ctx)
	if err != nil {
		return fmt.Errorf("get bookings: %w", err)
	}

	for _, b := range bookings {
		s.println(b)
	}

	s.l.LogInfo("Session finished")

	return s.werr
}

func (s *Session) register(ctx context.Context) (*hotel.Customer, error) {
	name, err := s.readLine("Enter your name: ")
	if err != nil {
		return nil, err
	}

	phone, err := s.readLine("Enter your phone number: ")
	if err != nil {
		return nil, err
	}

	email, err := s.readLine("Enter your email: ")
	if err != nil {
		return nil, err
	}

	customer, err := s.hotel.RegisterCustomer(ctx, name, phone, email)
	if err != nil {
		return nil, fmt.Errorf("register customer: %w", err)
	}

	return customer, nil
}

func (s *Session) chooseCategory() (hotel.Category, bool, error) {
	line, err := s.readLine("\n🔹 Select Room Type:\n1️⃣ for Single Room\n2️⃣ for Double Room\n➡ Enter choice: ")
	if err != nil {
		return "", false, err
	}

	switch choice, _ := parseInt(line); choice {
	case 1:
		return hotel.Single, true, nil
	case 2: //nolint:gomnd
		return hotel.Double, true, nil
	default:
		s.l.LogInfo("Invalid room type %q", line)
		s.printf("❌ Invalid room type! Exiting.\n")

		return "", false, s.werr
	}
}

func (s *Session) chooseRoom(ctx context.Context) (*hotel.Room, bool, error) {
	line, err := s.readLine("\n🔢 Enter the room number you want to book: ")
	if err != nil {
		return nil, false, err
	}

	number, err := parseInt(line)
	if err != nil {
		s.l.LogInfo("Invalid room number %q", line)
		s.printf("❌ Invalid room number. Please try again.\n")

		return nil, false, s.werr
	}

	room, err := s.hotel.FindRoom(ctx, number)
	if errors.Is(err, hotel.ErrRoomNotFound) {
		s.l.LogInfo("Room %d does not exist", number)
		s.printf("❌ Invalid room number. Please try again.\n")

		return nil, false, s.werr
	}

	if err != nil {
		return nil, false, err
	}

	if room.Booked {
		s.l.LogInfo("Room %d is already booked", number)
		s.printf("❌ Sorry, this room is already booked.\n")

		return nil, false, s.werr
	}

	return room, true, nil
}

func (s *Session) choosePaymentMethod() (string, error) {
	s.printf("\n💳 **Payment Options:**\n")

	for i, method := range payment.Methods() {
		s.printf("%d️⃣ %s\n", i+1, method)
	}

	prompt := fmt.Sprintf("➡ Select a payment method (1-%d): ", len(payment.Methods()))

	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return "", err
		}

		choice, err := parseInt(line)
		if err == nil {
			method, err := payment.MethodByChoice(choice)
			if err == nil {
				return method, nil
			}
		}

		s.l.LogDebug("Invalid payment selection %q", line)
		s.printf("❌ Invalid selection! Please enter a valid option.\n")
	}
}

// listCategory prints a header naming the room number span of category,
// then every available room of that category.
func (s *Session) listCategory(ctx context.Context, header string, category hotel.Category, sep string) error {
	span, err := s.numberSpan(ctx, category, sep)
	if err != nil {
		return err
	}

	s.printf(header+"\n", category, span)

	if err := s.hotel.ListRooms(ctx, s.out, category); err != nil {
		return fmt.Errorf("list %s rooms: %w", category, err)
	}

	return nil
}

func (s *Session) numberSpan(ctx context.Context, category hotel.Category, sep string) (string, error) {
	rooms, err := s.hotel.Rooms(ctx)
	if err != nil {
		return "", fmt.Errorf("get rooms: %w", err)
	}

	lo, hi := 0, 0

	for _, room := range rooms {
		if room.Category != category {
			continue
		}

		if lo == 0 || room.Number < lo {
			lo = room.Number
		}

		if room.Number > hi {
			hi = room.Number
		}
	}

	if lo == 0 {
		return "", nil
	}

	return fmt.Sprintf(" (%d%s%d)", lo, sep, hi), nil
}

// readLine returns the next input line without its line ending. Lines have
// no length limit; a final line without a newline is still returned.
func (s *Session) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}

		if line == "" {
			return "", ErrInputClosed
		}
	}

	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func (s *Session) printf(format string, v ...any) {
	if s.werr != nil {
		return
	}

	if _, err := fmt.Fprintf(s.out, format, v...); err != nil {
		s.werr = fmt.Errorf("write output: %w", err)
	}
}

func (s *Session) println(v ...any) {
	if s.werr != nil {
		return
	}

	if _, err := fmt.Fprintln(s.out, v...); err != nil {
		s.werr = fmt.Errorf("write output: %w", err)
	}
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}

	return n, nil
}

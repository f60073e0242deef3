package app

import (
	"context"
	"fmt"
	"io"

	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/sequence"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/payment"
	"github.com/avstrong/hotel/internal/session"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/avstrong/hotel/internal/transport/console"
)

// Run plays one booking session over in and out. State lives only for the
// duration of the call.
func Run(ctx context.Context, l *logger.Logger, cfg *config.Config, in io.Reader, out io.Writer) error {
	ctx, id := session.Start(ctx)
	l = l.With(session.TraceID(ctx))

	h, err := newHotel(ctx, l, cfg)
	if err != nil {
		return err
	}

	consoleConf := console.Conf{
		L:   l,
		In:  in,
		Out: out,
	}

	s := console.New(consoleConf, h, payment.NewProcessor(l, out))

	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("run session %v: %w", id, err)
	}

	return nil
}

// PrintRooms writes the initial inventory of the configured hotel.
func PrintRooms(ctx context.Context, l *logger.Logger, cfg *config.Config, out io.Writer) error {
	h, err := newHotel(ctx, l, cfg)
	if err != nil {
		return err
	}

	if err := h.ListRooms(ctx, out); err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}

	return nil
}

func newHotel(ctx context.Context, l *logger.Logger, cfg *config.Config) (*hotel.Hotel, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, fmt.Errorf("room layout: %w", err)
	}

	storage := memory.New(memory.Config{L: l})

	ids := hotel.IDs{
		Customers: sequence.New(storage.CountCustomers),
		Bookings:  sequence.New(storage.CountBookings),
	}

	h, err := hotel.New(ctx, l, storage, ids, cfg.Hotel.Name, layout...)
	if err != nil {
		return nil, fmt.Errorf("init hotel: %w", err)
	}

	l.LogInfo("Hotel %s is open", h.Name())

	return h, nil
}

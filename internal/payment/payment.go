package payment

import (
	"errors"
	"fmt"
	"io"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

var ErrInvalidChoice = errors.New("invalid payment choice")

var methods = []string{"UPI", "Card", "PhonePe", "Credit Card", "PayPal"}

// Methods returns the accepted payment methods in menu order.
func Methods() []string {
	return append([]string(nil), methods...)
}

// MethodByChoice maps a 1-based menu choice to its method name.
func MethodByChoice(choice int) (string, error) {
	if choice < 1 || choice > len(methods) {
		return "", fmt.Errorf("choice %d: %w", choice, ErrInvalidChoice)
	}

	return methods[choice-1], nil
}

func IsValidMethod(method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}

	return false
}

// Payment exists only while a payment is being processed.
type Payment struct {
	Method string
	Amount hotel.Money
}

// Processor simulates payment confirmation. Nothing leaves the process.
type Processor struct {
	l *logger.Logger
	w io.Writer
}

func NewProcessor(l *logger.Logger, w io.Writer) *Processor {
	return &Processor{l: l, w: w}
}

func (p *Processor) Process(payment Payment) bool {
	if !IsValidMethod(payment.Method) {
		p.l.LogInfo("Payment refused: unknown method %q", payment.Method)
		p.printf("❌ Invalid payment method! Please try again.\n")

		return false
	}

	p.printf("\n💳 Processing %s payment of ₹%s...\n", payment.Method, payment.Amount)
	p.printf("✅ Payment successful!\n")

	p.l.LogInfo("Payment of %s accepted via %s", payment.Amount, payment.Method)

	return true
}

func (p *Processor) printf(format string, v ...any) {
	if _, err := fmt.Fprintf(p.w, format, v...); err != nil {
		p.l.LogErrorf("Could not write payment output: %v", err.Error())
	}
}

package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/rs/zerolog"
)

// Notifier delivers a copy of the order to the manager
type Notifier interface {
	Notify(ctx context.Context, subject, text string) error
}

// StatusChanger moves a box through its lifecycle
type StatusChanger interface {
	Transition(ctx context.Context, boxID string, status models.BoxStatus) (models.Box, error)
}

// Order is the result of a handoff: the text and the link the caller opens
type Order struct {
	BoxID   string           `json:"boxId"`
	Message string           `json:"message"`
	Link    string           `json:"link"`
	Status  models.BoxStatus `json:"status"`
}

// Config controls where orders are sent
type Config struct {
	// ManagerPhone is the WhatsApp number without "+", e.g. 79990000000
	ManagerPhone string
	// MarkOrdered moves the box to "ordered" once the link is built
	MarkOrdered bool
}

// Handoff turns a box plus contact details into an outbound message
type Handoff struct {
	cfg      Config
	notifier Notifier
	status   StatusChanger
	logger   zerolog.Logger
}

// NewHandoff creates a Handoff. notifier and status may be nil.
func NewHandoff(cfg Config, notifier Notifier, status StatusChanger, logger zerolog.Logger) *Handoff {
	return &Handoff{
		cfg:      cfg,
		notifier: notifier,
		status:   status,
		logger:   logger.With().Str("component", "orders").Logger(),
	}
}

// BuildMessage renders the order text sent to the manager
func BuildMessage(box models.Box, contact models.OrderContact) string {
	lines := make([]string, 0, len(box.Products))
	for i, p := range box.Products {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) — %d₽", i+1, p.Name, p.Brand, p.Price))
	}

	var b strings.Builder
	b.WriteString("👋 Здравствуйте! Хочу заказать персональный бокс Skinglow AI.\n\n")
	b.WriteString("👤 *Данные клиента:*\n")
	fmt.Fprintf(&b, "Имя: %s\n", contact.Name)
	fmt.Fprintf(&b, "Телефон: %s\n", contact.Phone)
	fmt.Fprintf(&b, "Адрес: %s\n", contact.Address)
	if strings.TrimSpace(contact.Comment) != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", contact.Comment)
	}
	b.WriteString("\n📦 *СОСТАВ БОКСА:*\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "💰 *Итого:* %d ₽\n", box.TotalPrice)
	fmt.Fprintf(&b, "🔍 *Тип кожи:* %s\n", box.Profile.SkinType)
	return strings.TrimSpace(b.String())
}

// uriComponentEscaper turns QueryEscape output into encodeURIComponent form:
// spaces as %20 and !'()* left literal
var uriComponentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// BuildLink encodes message into a WhatsApp deep link for phone
func BuildLink(phone, message string) string {
	text := uriComponentEscaper.Replace(url.QueryEscape(message))
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, text)
}

// Submit builds the order message and link for box. Delivery is not confirmed;
// the box status changes only when MarkOrdered is set.
func (h *Handoff) Submit(ctx context.Context, box models.Box, contact models.OrderContact) (Order, error) {
	if err := contact.Validate(); err != nil {
		return Order{}, err
	}
	if h.cfg.ManagerPhone == "" {
		return Order{}, fmt.Errorf("manager phone is not configured")
	}

	message := BuildMessage(box, contact)
	order := Order{
		BoxID:   box.ID,
		Message: message,
		Link:    BuildLink(h.cfg.ManagerPhone, message),
		Status:  box.Status,
	}

	if h.notifier != nil {
		subject := fmt.Sprintf("Заказ бокса %s", box.ID)
		if err := h.notifier.Notify(ctx, subject, message); err != nil {
			h.logger.Error().Err(err).Str("box_id", box.ID).Msg("order notification failed")
		}
	}

	if h.cfg.MarkOrdered && h.status != nil {
		updated, err := h.status.Transition(ctx, box.ID, models.BoxStatusOrdered)
		if err != nil {
			return Order{}, fmt.Errorf("mark box ordered: %w", err)
		}
		order.Status = updated.Status
	}

	h.logger.Info().Str("box_id", box.ID).Str("status", string(order.Status)).Msg("order handed off")
	return order, nil
}

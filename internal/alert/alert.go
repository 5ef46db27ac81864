package alert

import (
	"context"
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/metrics"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

type Notifier interface {
	LowStock(ctx context.Context, item models.InventoryItem)
}

// Multi fans an alert out to every notifier in order.
type Multi []Notifier

func (m Multi) LowStock(ctx context.Context, item models.InventoryItem) {
	for _, n := range m {
		n.LowStock(ctx, item)
	}
}

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

func (n *LogNotifier) LowStock(_ context.Context, item models.InventoryItem) {
	metrics.LowStockAlerts.WithLabelValues("log").Inc()
	n.log.Warn().
		Str("item_id", item.ID).
		Str("name", item.Name).
		Str("category", item.Category).
		Int("quantity", item.Quantity).
		Int("threshold", inventory.LowStockThreshold).
		Msg("ALERT: item at or below low-stock threshold")
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier emails alerts. Delivery runs in the background so request
// handling never waits on the mail server.
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	log  zerolog.Logger
	send SendFunc
	now  func() time.Time
}

func NewSMTPNotifier(cfg config.SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: logger, send: smtp.SendMail, now: time.Now}
}

func (n *SMTPNotifier) LowStock(_ context.Context, item models.InventoryItem) {
	// Encoded words keep CR and LF in a name out of the header block.
	subject := mime.QEncoding.Encode("utf-8", fmt.Sprintf("LOW STOCK: %s (%d left)", item.Name, item.Quantity))
	body := fmt.Sprintf("Item: %s\nCategory: %s\nQuantity: %d\nStatus: %s\nTime: %s",
		singleLine(item.Name), singleLine(item.Category), item.Quantity, item.Status, n.now().UTC().Format(time.RFC3339))

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", n.cfg.From, n.cfg.To, subject, body)

	metrics.LowStockAlerts.WithLabelValues("smtp").Inc()
	go func() {
		if err := n.deliver([]byte(msg)); err != nil {
			n.log.Error().Err(err).Str("item_id", item.ID).Msg("failed to send low-stock email")
		}
	}()
}

// SendDigest emails an HTML report of every item needing attention. Nothing
// is sent when all items are well stocked.
func (n *SMTPNotifier) SendDigest(items []models.InventoryItem) error {
	var affected []models.InventoryItem
	byCategory := make(map[string]int)
	var categories []string
	for _, it := range items {
		if !inventory.NeedsAttention(it) {
			continue
		}
		affected = append(affected, it)
		if byCategory[it.Category] == 0 {
			categories = append(categories, it.Category)
		}
		byCategory[it.Category]++
	}
	if len(affected) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily Low-Stock Report</h2>")
	sb.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(inventory.GenerateLowStockSummary(items))))

	sb.WriteString("<h3>By Category</h3><ul>")
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", html.EscapeString(c), byCategory[c]))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Items</h3><ul>")
	for _, it := range affected {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> (%s): %d left, %s</li>",
			html.EscapeString(it.Name), html.EscapeString(it.Category), it.Quantity, html.EscapeString(string(it.Status))))
	}
	sb.WriteString("</ul>")

	msg := strings.Join([]string{
		"From: " + n.cfg.From,
		"To: " + n.cfg.To,
		"Subject: Daily Low-Stock Report",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		sb.String(),
	}, "\r\n")

	return n.deliver([]byte(msg))
}

func singleLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func (n *SMTPNotifier) deliver(msg []byte) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Server, n.cfg.Port)
	var auth smtp.Auth
	if !n.cfg.AuthDisabled {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Server)
	}
	return n.send(addr, auth, n.cfg.From, []string{n.cfg.To}, msg)
}

// Lister is the read side of the inventory service.
type Lister interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
}

// RunDailyDigest sends the digest every day at 23:59 local time until ctx is
// cancelled.
func RunDailyDigest(ctx context.Context, items Lister, n *SMTPNotifier, logger zerolog.Logger) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		list, err := items.List(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("daily digest: could not list inventory")
			continue
		}
		if err := n.SendDigest(list); err != nil {
			logger.Error().Err(err).Msg("daily digest: send failed")
			continue
		}
		logger.Info().Msg("daily low-stock digest sent")
	}
}

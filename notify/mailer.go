package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sellerhub/marketplace-api/models"
)

// Sender delivers order confirmations. Delivery is best-effort: callers
// log failures and never surface them to the buyer.
type Sender interface {
	SendOrderConfirmation(order *models.Order) error
}

// NewSender returns an SMTP-backed sender, or nil when mail is not
// configured. A nil Sender is checked by callers before use.
func NewSender(addr, from string) Sender {
	if addr == "" || from == "" {
		return nil
	}
	return &smtpSender{addr: addr, from: from}
}

type smtpSender struct {
	addr string // host:port
	from string
}

func (s *smtpSender) SendOrderConfirmation(order *models.Order) error {
	to := order.Billing.Email
	if to == "" {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", s.from)
	fmt.Fprintf(&body, "To: %s\r\n", to)
	fmt.Fprintf(&body, "Subject: Order %s confirmed\r\n\r\n", order.OrderRef)
	fmt.Fprintf(&body, "Hi %s,\r\n\r\nThanks for your order %s.\r\n\r\n", order.Billing.Name, order.OrderRef)
	for _, item := range order.Items {
		fmt.Fprintf(&body, "  %d x %s @ %.2f\r\n", item.Quantity, item.Title, item.Price)
	}
	if order.Discount > 0 {
		fmt.Fprintf(&body, "\r\nDiscount: -%.2f\r\n", order.Discount)
	}
	fmt.Fprintf(&body, "Total: %.2f\r\n", order.TotalAmount)

	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(body.String()))
}

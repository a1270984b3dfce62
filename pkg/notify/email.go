// Package notify sends transactional mail. Delivery is best-effort:
// callers log failures and carry on.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
)

type Mailer struct {
	config *config.SMTPConfig
}

func NewMailer(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) send(to, subject, body string) error {
	if m.config.Host == "" {
		// Mail is not configured; treat as delivered.
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	return smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String()))
}

func (m *Mailer) SendOrderConfirmation(to, name string, order *models.Order) error {
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\nYour order %s has been placed.\n\n", name, order.ID.Hex())
	for _, item := range order.Items {
		fmt.Fprintf(&body, "  %s x%d  ₹%.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&body, "\nSubtotal: ₹%.2f\nShipping: ₹%.2f\nTotal: ₹%.2f\n",
		order.Subtotal, order.ShippingCharge, order.TotalAmount)
	body.WriteString("\nThank you for shopping with AmarJyoti.\n")

	return m.send(to, fmt.Sprintf("Order confirmed: %s", order.ID.Hex()), body.String())
}

func (m *Mailer) SendPasswordResetOTP(to, otp string) error {
	body := fmt.Sprintf("Your AmarJyoti password reset code is %s. It expires in 10 minutes.\n", otp)
	return m.send(to, "Password reset code", body)
}

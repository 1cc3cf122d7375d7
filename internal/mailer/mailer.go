package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"smartcart/internal/config"
)

// Usecaseが依存するメール送信の約束。失敗しても業務処理は止めない前提。
type Mailer interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendOrderConfirmation(ctx context.Context, to string, name string, orderNumber string, totalAmount string, itemCount int) error
	SendPasswordReset(ctx context.Context, to string, resetURL string) error
}

type SendGridMailer struct {
	apiKey   string
	from     string
	fromName string
	log      *slog.Logger
}

func NewSendGridMailer(cfg config.Config, log *slog.Logger) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   cfg.SendGridAPIKey,
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
		log:      log,
	}
}

func (m *SendGridMailer) SendWelcome(ctx context.Context, to string, name string) error {
	subject := "Welcome to SmartCart!"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Happy shopping!", name)
	return m.send(to, subject, body)
}

func (m *SendGridMailer) SendOrderConfirmation(ctx context.Context, to string, name string, orderNumber string, totalAmount string, itemCount int) error {
	subject := fmt.Sprintf("Order Confirmation - %s", orderNumber)
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for your order %s.\nItems: %d\nTotal: $%s",
		name, orderNumber, itemCount, totalAmount,
	)
	return m.send(to, subject, body)
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, to string, resetURL string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf("You requested a password reset.\n\nReset link (valid for 1 hour):\n%s", resetURL)
	return m.send(to, subject, body)
}

func (m *SendGridMailer) send(to string, subject string, body string) error {
	// APIキー未設定（開発環境）はログ出力だけで成功扱い
	if m.apiKey == "" {
		m.log.Info("mail skipped (no api key)", "to", to, "subject", subject)
		return nil
	}

	fromEmail := mail.NewEmail(m.fromName, m.from)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(fromEmail, subject, toEmail, body, fmt.Sprintf("<pre>%s</pre>", body))

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	m.log.Info("mail sent", "to", to, "subject", subject, "status", resp.StatusCode)
	return nil
}

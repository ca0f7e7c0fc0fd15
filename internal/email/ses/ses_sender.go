// Package ses delivers quote emails through Amazon SES v2.
package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"preventivi/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendQuote(ctx context.Context, msg port.QuoteEmail) error {
	subject := QuoteSubject(msg)
	htmlBody := buildQuoteHTML(msg)
	textBody := buildQuoteText(msg)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	if msg.IssuerName != "" {
		from = fmt.Sprintf("%s via %s <%s>", msg.IssuerName, s.fromName, s.fromAddress)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// QuoteSubject returns the email subject line for a quote.
func QuoteSubject(msg port.QuoteEmail) string {
	if msg.Subject == "" {
		return fmt.Sprintf("Preventivo n. %s", msg.QuoteNumber)
	}
	return fmt.Sprintf("Preventivo n. %s - %s", msg.QuoteNumber, msg.Subject)
}

func greeting(name string) string {
	if name == "" {
		return "Gentile cliente"
	}
	return "Gentile " + name
}

func buildQuoteText(msg port.QuoteEmail) string {
	return fmt.Sprintf("%s,\n\nin allegato il preventivo n. %s di %s.\nPuò scaricarlo dal seguente link:\n%s\n\nIl link resta valido per un periodo limitato.\n\nCordiali saluti,\n%s",
		greeting(msg.ToName), msg.QuoteNumber, msg.IssuerName, msg.DownloadURL, msg.IssuerName)
}

func buildQuoteHTML(msg port.QuoteEmail) string {
	issuer := html.EscapeString(msg.IssuerName)
	link := html.EscapeString(msg.DownloadURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>%s,</p>
  <p>%s le invia il preventivo n. <strong>%s</strong>%s.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #1F4E79; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Scarica il preventivo</a>
  </p>
  <p>Oppure copi questo link nel browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">Il link resta valido per un periodo limitato.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(greeting(msg.ToName)),
		issuer,
		html.EscapeString(msg.QuoteNumber),
		subjectSuffix(msg.Subject),
		link, link, issuer)
}

func subjectSuffix(subject string) string {
	if subject == "" {
		return ""
	}
	return ": " + html.EscapeString(subject)
}

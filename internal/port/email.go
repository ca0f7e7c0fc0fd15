package port

import "context"

// QuoteEmail is a quote delivery message.
type QuoteEmail struct {
	ToEmail     string
	ToName      string
	IssuerName  string
	QuoteNumber string
	Subject     string
	DownloadURL string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendQuote(ctx context.Context, msg QuoteEmail) error
}

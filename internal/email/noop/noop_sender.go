// Package noop provides an EmailSender that only logs.
package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"preventivi/internal/port"
)

type noopSender struct {
	log logrus.FieldLogger
}

// NewNoopSender creates a no-op EmailSender that logs each quote delivery.
func NewNoopSender(log logrus.FieldLogger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendQuote(_ context.Context, msg port.QuoteEmail) error {
	s.log.WithFields(logrus.Fields{
		"to":           msg.ToEmail,
		"quote_number": msg.QuoteNumber,
		"download_url": msg.DownloadURL,
	}).Info("[NOOP EMAIL] quote delivery")
	return nil
}

package app

import (
	"jobportal_backend/internal/logger"
)

// LoggingDispatcher используется вместо SMTP, когда почта не сконфигурирована:
// письма не уходят, но видны в логах.
type LoggingDispatcher struct{}

func (d *LoggingDispatcher) Send(to, subject, body string) error {
	logger.Info("[email mock] message not sent", "to", to, "subject", subject)
	return nil
}

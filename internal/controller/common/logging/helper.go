package logginghelper

import (
	"github.com/Egor213/tidelogs/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(entry *domain.LogEntry) {
	log.WithFields(log.Fields{
		"service": entry.Service,
		"level":   entry.Level,
	}).Debug("Received log via HTTP")
}

func LogSaved(entry *domain.LogEntry) {
	log.WithFields(log.Fields{
		"service": entry.Service,
		"level":   entry.Level,
		"id":      entry.Id,
	}).Info("Log saved successfully")
}

// LogError records the failed operation without request values.
func LogError(op string, err error) {
	log.WithFields(log.Fields{
		"op":    op,
		"error": err,
	}).Error("Request failed")
}

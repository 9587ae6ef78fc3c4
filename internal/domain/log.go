package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogLevelError = "ERROR"
	LogLevelWarn  = "WARN"
	LogLevelInfo  = "INFO"
	LogLevelDebug = "DEBUG"
)

// LogEntry is immutable once persisted. Id and CreatedAt are assigned by the store.
type LogEntry struct {
	Id        uuid.UUID      `db:"id" json:"id"`
	Timestamp time.Time      `db:"timestamp" json:"timestamp"`
	Service   string         `db:"service" json:"service"`
	Level     string         `db:"level" json:"level"`
	Message   string         `db:"message" json:"message"`
	Metadata  map[string]any `db:"metadata" json:"metadata"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

type LogPage struct {
	Logs   []LogEntry
	Total  int64
	Limit  int64
	Offset int64
}

type Metrics struct {
	TotalLogs int64            `json:"total_logs"`
	Services  map[string]int64 `json:"services"`
	Levels    map[string]int64 `json:"levels"`
}

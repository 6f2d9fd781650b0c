package domain

import (
	"context"
	"strings"
)

// Known CONFIG keys.
const (
	ConfigEventID         = "EVENT_ID"
	ConfigEventTitle      = "EVENT_TITLE"
	ConfigEventLocation   = "EVENT_LOCATION"
	ConfigEventConfirmed  = "EVENT_CONFIRMED_AT"
	ConfigEventCalendarID = "EVENT_CALENDAR_ID"
)

// ConfigMap is the trimmed key/value view of the CONFIG table.
type ConfigMap map[string]string

// ConfigMapFromRows builds a ConfigMap, skipping rows with an empty key.
// Later rows win when a key repeats.
func ConfigMapFromRows(rows []Row) ConfigMap {
	m := make(ConfigMap, len(rows))
	for _, r := range rows {
		key := strings.TrimSpace(r.Cell(0))
		if key == "" {
			continue
		}
		m[key] = strings.TrimSpace(r.Cell(1))
	}
	return m
}

// Get returns the value for key, or def when it is absent or empty.
func (m ConfigMap) Get(key, def string) string {
	if v := m[key]; v != "" {
		return v
	}
	return def
}

// ConfigService reads and writes CONFIG entries.
type ConfigService interface {
	Load(ctx context.Context) (ConfigMap, error)
	Set(ctx context.Context, key, value string) error
}

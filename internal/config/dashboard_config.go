package config

import "time"

const (
	// Dashboard
	HistogramDays    = 7                  // trailing window, calendar days
	OverdueThreshold = 72 * time.Hour     // pending + unassigned older than this
	RoleCacheTTL     = 5 * time.Minute    // redis role-resolution cache
	EventsChannel    = "bcms:events"      // redis pub/sub channel for dashboards

	// Auth
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "bcms-service"
)

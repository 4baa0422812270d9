package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second

	DateTimeLayout = "2006-01-02 15:04:05"

	DefaultPageFrom = 0
	DefaultPageSize = 10
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

// Event rules
const (
	EventMinLeadTimeOwner   = 2 * time.Hour
	EventMinGapAfterPublish = time.Hour
	PublicViewsFallback     = 100 // years back when no event in a listing is published
	DetailViewsFallback     = 200 // years back when the event has no publishedOn
	PublicRangeEndYears     = 200
)

// Stats
const (
	EventURIPrefix      = "/events/"
	StatsDefaultApp     = "ewm-main-service"
	StatsClientTimeout  = 5 * time.Second
	RedisKeyViewsPrefix = "ewm:views:"
)

// Queue
const (
	TaskTypeRecordHit = "stats:hit"
	TaskMaxRetry      = 3
	TaskQueueDefault  = "default"
	HitTaskIDLength   = 16
	HitWorkerCount    = 4
)

// Auth
const (
	AdminTokenTTL       = 24 * time.Hour
	AdminTokenScope     = "admin"
	AuthorizationHeader = "Authorization"
	AuthorizationPrefix = "Bearer "
)

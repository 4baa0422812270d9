package dto

import (
	"time"

	"github.com/OmatthewY/explore-with-me/core/utils"
)

// EndpointHit is one recorded visit.
type EndpointHit struct {
	ID        int64          `json:"id,omitempty"`
	App       string         `json:"app" validate:"required,notblank"`
	URI       string         `json:"uri" validate:"required,notblank"`
	IP        string         `json:"ip" validate:"required,ipv4"`
	Timestamp utils.DateTime `json:"timestamp" validate:"required"`
}

// ViewStats is the hit count of one app/uri pair.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

type StatsRequest struct {
	Start  time.Time
	End    time.Time
	URIs   []string
	Unique bool
}

package models

// EventType discriminates the three tracker event kinds. Payloads without an
// eventType field are treated as pageviews for backward compatibility with
// older tracker builds.
type EventType string

const (
	EventTypePageView   EventType = "pageview"
	EventTypeEngagement EventType = "engagement"
	EventTypeScroll     EventType = "scroll"
)

// PageViewEvent is one stored pageview row. Every field is populated at the
// ingestion boundary; rows read back from older collections may still carry
// zero values for fields that did not exist when they were written, and the
// aggregation engine treats those as their documented defaults.
type PageViewEvent struct {
	Timestamp   string `json:"timestamp"` // ISO-8601
	Path        string `json:"path"`
	Referrer    string `json:"referrer"`
	ScreenWidth int    `json:"screenWidth"`
	IP          string `json:"ip"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	Browser     string `json:"browser"`
	OS          string `json:"os"`
	SessionID   string `json:"sessionId"` // empty for legacy rows
	VisitorID   string `json:"visitorId"` // empty for legacy rows
	PageIndex   int    `json:"pageIndex"`
	EntryPage   string `json:"entryPage"`
}

// EngagementEvent records that a visitor left a page after Duration
// milliseconds having scrolled to MaxScrollDepth percent. The tracker fires
// at most one per page visit, but uniqueness is not enforced; the engine
// sums and max-aggregates defensively.
type EngagementEvent struct {
	Timestamp      string `json:"timestamp"`
	Path           string `json:"path"`
	Duration       int    `json:"duration"`       // milliseconds
	MaxScrollDepth int    `json:"maxScrollDepth"` // 0-100
	SessionID      string `json:"sessionId"`
	VisitorID      string `json:"visitorId"`
}

// ScrollEvent records a scroll milestone crossing (25/50/75/100), once per
// milestone per page view. Kept as a raw audit trail; the aggregate response
// does not consume it.
type ScrollEvent struct {
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Depth     int    `json:"depth"`
	SessionID string `json:"sessionId"`
	VisitorID string `json:"visitorId"`
}

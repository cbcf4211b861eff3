package ingestors

import (
	"strconv"

	"site-analytics/internal/models"

	"github.com/mileusna/useragent"
)

// Defaults substituted at the ingestion boundary. Everything downstream of
// this package operates on fully-populated records; the only field a payload
// must carry for its row to ever reach aggregation is path.
const (
	defaultReferrer = "(direct)"
	defaultGeo      = "Unknown"
	defaultBrowser  = "Other"
	defaultOS       = "Other"

	// ISO-8601 with milliseconds, matching what the tracker sends.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

func (s *ingestionService) normalizePageView(payload map[string]any) *models.PageViewEvent {
	path := stringField(payload, "path", "")
	browser, osName := s.browserOSFields(payload)

	return &models.PageViewEvent{
		Timestamp:   s.timestampField(payload),
		Path:        path,
		Referrer:    stringField(payload, "referrer", defaultReferrer),
		ScreenWidth: clamp(intField(payload, "screenWidth", 0), 0, maxInt),
		IP:          stringField(payload, "ip", defaultGeo),
		City:        stringField(payload, "city", defaultGeo),
		Country:     stringField(payload, "country", defaultGeo),
		Region:      stringField(payload, "region", defaultGeo),
		Browser:     browser,
		OS:          osName,
		SessionID:   stringField(payload, "sessionId", ""),
		VisitorID:   stringField(payload, "visitorId", ""),
		PageIndex:   clamp(intField(payload, "pageIndex", 1), 1, maxInt),
		EntryPage:   stringField(payload, "entryPage", path),
	}
}

func (s *ingestionService) normalizeEngagement(payload map[string]any) *models.EngagementEvent {
	return &models.EngagementEvent{
		Timestamp:      s.timestampField(payload),
		Path:           stringField(payload, "path", ""),
		Duration:       clamp(intField(payload, "duration", 0), 0, maxInt),
		MaxScrollDepth: clamp(intField(payload, "maxScrollDepth", 0), 0, 100),
		SessionID:      stringField(payload, "sessionId", ""),
		VisitorID:      stringField(payload, "visitorId", ""),
	}
}

func (s *ingestionService) normalizeScroll(payload map[string]any) *models.ScrollEvent {
	return &models.ScrollEvent{
		Timestamp: s.timestampField(payload),
		Path:      stringField(payload, "path", ""),
		Depth:     clamp(intField(payload, "depth", 0), 0, 100),
		SessionID: stringField(payload, "sessionId", ""),
		VisitorID: stringField(payload, "visitorId", ""),
	}
}

// browserOSFields resolves the browser/os pair. The tracker usually sends
// both pre-bucketed; when a payload carries a raw userAgent instead, the
// server parses it and buckets into the same fixed enumerations the tracker
// uses, falling back to "Other".
func (s *ingestionService) browserOSFields(payload map[string]any) (string, string) {
	browser := stringField(payload, "browser", "")
	osName := stringField(payload, "os", "")
	if browser != "" && osName != "" {
		return browser, osName
	}

	if ua := stringField(payload, "userAgent", ""); ua != "" {
		parsedBrowser, parsedOS := bucketUserAgent(ua)
		if browser == "" {
			browser = parsedBrowser
		}
		if osName == "" {
			osName = parsedOS
		}
	}

	if browser == "" {
		browser = defaultBrowser
	}
	if osName == "" {
		osName = defaultOS
	}
	return browser, osName
}

func bucketUserAgent(ua string) (string, string) {
	parsed := useragent.Parse(ua)

	browser := defaultBrowser
	switch parsed.Name {
	case useragent.Edge, useragent.Chrome, useragent.Firefox, useragent.Safari:
		browser = parsed.Name
	}

	osName := defaultOS
	switch parsed.OS {
	case useragent.IOS, useragent.Android, useragent.Windows, useragent.MacOS, useragent.Linux:
		osName = parsed.OS
	}

	return browser, osName
}

// timestampField returns the payload timestamp verbatim, or the current UTC
// time when absent. Client timestamps are stored as sent; the engine guards
// against unparsable values at read time.
func (s *ingestionService) timestampField(payload map[string]any) string {
	if ts := stringField(payload, "timestamp", ""); ts != "" {
		return ts
	}
	return s.now().UTC().Format(timestampLayout)
}

// stringField reads a string value, substituting def for a missing,
// non-string, or empty value.
func stringField(payload map[string]any, key, def string) string {
	value, ok := payload[key]
	if !ok {
		return def
	}
	str, ok := value.(string)
	if !ok || str == "" {
		return def
	}
	return str
}

// intField reads an integer value. JSON numbers arrive as float64; numeric
// strings are tolerated because older tracker builds sent some counters as
// strings. Anything else is def.
func intField(payload map[string]any, key string, def int) int {
	value, ok := payload[key]
	if !ok {
		return def
	}
	switch n := value.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
		return def
	default:
		return def
	}
}

const maxInt = int(^uint(0) >> 1)

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

package models

// AggregateResult is the dashboard response document. It is a pure function
// of the event store contents plus the computation time, cached as a single
// serialized blob between writes.
//
// Example JSON:
//
//	{
//	  "summary": {"totalViews": 42, "todayViews": 3, "weekViews": 17, "uniquePaths": 5, "uniqueVisitors": 11},
//	  "daily": [{"date": "2026-08-01", "views": 9}],
//	  "pages": [{"path": "/", "views": 30}],
//	  "devices": {"mobile": 12, "desktop": 30},
//	  "topCities": [{"city": "Riyadh", "country": "SA", "region": "Riyadh Province", "views": 8}],
//	  "browsers": [{"name": "Chrome", "views": 25}],
//	  "engagement": {"avgPagesPerSession": 1.6, "engagementRate": 40, "bounceRate": 55, "avgSessionDuration": 48, "newVisitors": 9, "returningVisitors": 2},
//	  "ramadanFunnel": [{"day": 1, "uniqueVisitors": 6, "avgDuration": 75, "avgScrollDepth": 62, "readCompletionRate": 33}],
//	  "contentEngagement": [{"path": "/", "totalViews": 30, "avgDuration": 41, "avgScrollDepth": 58, "readCompletionRate": 20}]
//	}
type AggregateResult struct {
	Summary           Summary             `json:"summary"`
	Daily             []DailyViews        `json:"daily"`
	Pages             []PageViews         `json:"pages"`
	Devices           Devices             `json:"devices"`
	TopCities         []CityViews         `json:"topCities"`
	Browsers          []BrowserViews      `json:"browsers"`
	Engagement        EngagementSummary   `json:"engagement"`
	RamadanFunnel     []FunnelDay         `json:"ramadanFunnel"`
	ContentEngagement []ContentEngagement `json:"contentEngagement"`
}

type Summary struct {
	TotalViews     int `json:"totalViews"`
	TodayViews     int `json:"todayViews"`
	WeekViews      int `json:"weekViews"`
	UniquePaths    int `json:"uniquePaths"`
	UniqueVisitors int `json:"uniqueVisitors"`
}

type DailyViews struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Views int    `json:"views"`
}

type PageViews struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

type Devices struct {
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
}

type CityViews struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Region  string `json:"region"`
	Views   int    `json:"views"`
}

type BrowserViews struct {
	Name  string `json:"name"`
	Views int    `json:"views"`
}

type EngagementSummary struct {
	AvgPagesPerSession float64 `json:"avgPagesPerSession"`
	EngagementRate     int     `json:"engagementRate"`
	BounceRate         int     `json:"bounceRate"`
	AvgSessionDuration int     `json:"avgSessionDuration"` // seconds
	NewVisitors        int     `json:"newVisitors"`
	ReturningVisitors  int     `json:"returningVisitors"`
}

type FunnelDay struct {
	Day                int `json:"day"`
	UniqueVisitors     int `json:"uniqueVisitors"`
	AvgDuration        int `json:"avgDuration"` // seconds
	AvgScrollDepth     int `json:"avgScrollDepth"`
	ReadCompletionRate int `json:"readCompletionRate"`
}

type ContentEngagement struct {
	Path               string `json:"path"`
	TotalViews         int    `json:"totalViews"`
	AvgDuration        int    `json:"avgDuration"` // seconds
	AvgScrollDepth     int    `json:"avgScrollDepth"`
	ReadCompletionRate int    `json:"readCompletionRate"`
}

// NewEmptyAggregateResult returns a document with zero counts and empty
// (non-nil) lists, so an empty dataset still serializes arrays as [] and the
// dashboard renders instead of erroring.
func NewEmptyAggregateResult() *AggregateResult {
	return &AggregateResult{
		Daily:             []DailyViews{},
		Pages:             []PageViews{},
		TopCities:         []CityViews{},
		Browsers:          []BrowserViews{},
		RamadanFunnel:     []FunnelDay{},
		ContentEngagement: []ContentEngagement{},
	}
}

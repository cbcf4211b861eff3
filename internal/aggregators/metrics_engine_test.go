package aggregators

import (
	"encoding/json"
	"testing"
	"time"

	"site-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() MetricsEngine {
	return NewMetricsEngine(EngineOptions{
		DashboardPath:    "/dashboard",
		TestPathPrefix:   "/test",
		FunnelPathPrefix: "/ramadan",
	})
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCompute_EmptyInputs(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()

	result := engine.Compute(nil, nil, testNow)

	assert.Equal(t, models.Summary{}, result.Summary)
	assert.Equal(t, models.Devices{}, result.Devices)
	assert.Equal(t, models.EngagementSummary{}, result.Engagement)
	assert.NotNil(t, result.Daily)
	assert.NotNil(t, result.Pages)
	assert.NotNil(t, result.TopCities)
	assert.NotNil(t, result.Browsers)
	assert.NotNil(t, result.RamadanFunnel)
	assert.NotNil(t, result.ContentEngagement)

	// Empty lists serialize as [], never null
	blob, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "null")
}

func TestCompute_DeterministicAcrossInputOrder(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()

	pvs := []*models.PageViewEvent{
		{Timestamp: "2026-03-01T08:00:00.000Z", Path: "/a", IP: "1.1.1.1", City: "Riyadh", Country: "SA", Browser: "Chrome", SessionID: "s1"},
		{Timestamp: "2026-03-01T08:05:00.000Z", Path: "/b", IP: "2.2.2.2", City: "Jeddah", Country: "SA", Browser: "Safari", SessionID: "s2"},
		{Timestamp: "2026-03-01T08:10:00.000Z", Path: "/c", IP: "3.3.3.3", City: "Cairo", Country: "EG", Browser: "Firefox", SessionID: "s3"},
	}
	engs := []*models.EngagementEvent{
		{Path: "/a", Duration: 15000, MaxScrollDepth: 60, SessionID: "s1"},
		{Path: "/b", Duration: 5000, MaxScrollDepth: 30, SessionID: "s2"},
	}

	reversedPvs := []*models.PageViewEvent{pvs[2], pvs[1], pvs[0]}
	reversedEngs := []*models.EngagementEvent{engs[1], engs[0]}

	first, err := json.Marshal(engine.Compute(pvs, engs, testNow))
	require.NoError(t, err)
	second, err := json.Marshal(engine.Compute(reversedPvs, reversedEngs, testNow))
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical data must serialize identically regardless of row order")
}

func TestCompute_ExcludesReservedPaths(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()

	pvs := []*models.PageViewEvent{
		{Timestamp: "2026-03-01T08:00:00.000Z", Path: "/blog", SessionID: "s1"},
		{Timestamp: "2026-03-01T08:01:00.000Z", Path: "/dashboard", SessionID: "s2"},
		{Timestamp: "2026-03-01T08:02:00.000Z", Path: "/test/synthetic", SessionID: "s3"},
		{Timestamp: "2026-03-01T08:03:00.000Z", Path: "", SessionID: "s4"},
	}
	engs := []*models.EngagementEvent{
		{Path: "/blog", Duration: 15000, MaxScrollDepth: 60, SessionID: "s1"},
		{Path: "/test/synthetic", Duration: 60000, MaxScrollDepth: 100, SessionID: "s3"},
	}

	result := engine.Compute(pvs, engs, testNow)

	assert.Equal(t, 1, result.Summary.TotalViews)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "/blog", result.Pages[0].Path)
	require.Len(t, result.ContentEngagement, 1)
	assert.Equal(t, "/blog", result.ContentEngagement[0].Path)
}

func TestSummarize_TimeWindows(t *testing.T) {
	t.Parallel()

	engine := newTestEngine().(*metricsEngine)

	pvs := []*models.PageViewEvent{
		{Timestamp: "2026-03-01T08:00:00.000Z", Path: "/a", VisitorID: "v1"},
		{Timestamp: "2026-02-25T10:00:00.000Z", Path: "/a", VisitorID: "v2"},
		{Timestamp: "2026-02-09T10:00:00.000Z", Path: "/b", VisitorID: "v1"},
		{Timestamp: "not-a-time", Path: "/c", VisitorID: "v3"},
	}

	summary := engine.summarize(pvs, testNow)

	assert.Equal(t, 4, summary.TotalViews)
	assert.Equal(t, 1, summary.TodayViews)
	assert.Equal(t, 2, summary.WeekViews, "unparsable timestamps contribute nothing to windowed counts")
	assert.Equal(t, 3, summary.UniquePaths)
	assert.Equal(t, 3, summary.UniqueVisitors)
}

func TestDailySeries_ThirtyDayWindowSortedByDate(t *testing.T) {
	t.Parallel()

	engine := newTestEngine().(*metricsEngine)

	pvs := []*models.PageViewEvent{
		{Timestamp: "2026-03-01T09:00:00.000Z", Path: "/a"},
		{Timestamp: "2026-03-01T10:00:00.000Z", Path: "/b"},
		{Timestamp: "2026-02-20T10:00:00.000Z", Path: "/a"},
		{Timestamp: "2026-01-15T10:00:00.000Z", Path: "/a"}, // outside the window
		{Timestamp: "garbage", Path: "/a"},
	}

	daily := engine.dailySeries(pvs, testNow)

	require.Len(t, daily, 2)
	assert.Equal(t, models.DailyViews{Date: "2026-02-20", Views: 1}, daily[0])
	assert.Equal(t, models.DailyViews{Date: "2026-03-01", Views: 2}, daily[1])
}

func TestPagesList_SortedByViewsThenPath(t *testing.T) {
	t.Parallel()

	pages := pagesList(map[string]int{
		"/b": 3,
		"/c": 5,
		"/a": 3,
	})

	require.Len(t, pages, 3)
	assert.Equal(t, models.PageViews{Path: "/c", Views: 5}, pages[0])
	assert.Equal(t, models.PageViews{Path: "/a", Views: 3}, pages[1])
	assert.Equal(t, models.PageViews{Path: "/b", Views: 3}, pages[2])
}

func TestDeviceSplit_WidthThreshold(t *testing.T) {
	t.Parallel()

	pvs := []*models.PageViewEvent{
		{ScreenWidth: 0},    // unreported counts as desktop
		{ScreenWidth: 390},  // mobile
		{ScreenWidth: 767},  // mobile
		{ScreenWidth: 768},  // desktop
		{ScreenWidth: 1920}, // desktop
	}

	devices := deviceSplit(pvs)

	assert.Equal(t, models.Devices{Mobile: 2, Desktop: 3}, devices)
}

func TestTopCities_ExcludesUnknownAndCapsAtFifteen(t *testing.T) {
	t.Parallel()

	pvs := []*models.PageViewEvent{
		{City: "Unknown", Country: "SA"},
		{City: "", Country: "SA"},
	}
	// 16 distinct cities with descending view counts
	for i := 0; i < 16; i++ {
		city := string(rune('A' + i))
		for views := 0; views <= 16-i; views++ {
			pvs = append(pvs, &models.PageViewEvent{City: city, Country: "SA", Region: "R"})
		}
	}

	cities := topCities(pvs)

	require.Len(t, cities, 15)
	assert.Equal(t, "A", cities[0].City)
	assert.Equal(t, 17, cities[0].Views)
	assert.Equal(t, "O", cities[14].City, "sixteenth city is cut")
}

func TestBrowserBreakdown_SortedByViewsThenName(t *testing.T) {
	t.Parallel()

	pvs := []*models.PageViewEvent{
		{Browser: "Safari"},
		{Browser: "Chrome"},
		{Browser: "Chrome"},
		{Browser: "Firefox"},
		{Browser: ""},
	}

	browsers := browserBreakdown(pvs)

	require.Len(t, browsers, 4)
	assert.Equal(t, models.BrowserViews{Name: "Chrome", Views: 2}, browsers[0])
	assert.Equal(t, models.BrowserViews{Name: "Firefox", Views: 1}, browsers[1])
	assert.Equal(t, models.BrowserViews{Name: "Other", Views: 1}, browsers[2])
	assert.Equal(t, models.BrowserViews{Name: "Safari", Views: 1}, browsers[3])
}

func TestExtractDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want int
	}{
		{path: "/ramadan?day=7", want: 7},
		{path: "/ramadan/7", want: 7},
		{path: "/ramadan/12", want: 12},
		{path: "/ramadan", want: 1},
		{path: "/ramadan/intro", want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDay(tt.path))
		})
	}
}

func TestContentFunnel(t *testing.T) {
	t.Parallel()

	engine := newTestEngine().(*metricsEngine)

	pvs := []*models.PageViewEvent{
		{Path: "/ramadan", VisitorID: "v1"},
		{Path: "/ramadan", VisitorID: "v1"},       // same visitor dedupes
		{Path: "/ramadan", IP: "9.9.9.9"},         // ip fallback
		{Path: "/ramadan?day=7", SessionID: "s1"}, // sessionId fallback
		{Path: "/ramadan/7", VisitorID: "v2"},
		{Path: "/ramadan"}, // no identity at all
		{Path: "/blog", VisitorID: "v3"},
	}
	engs := []*models.EngagementEvent{
		{Path: "/ramadan?day=7", Duration: 35000, MaxScrollDepth: 80, SessionID: "s1"},
		{Path: "/ramadan/5", Duration: 60000, MaxScrollDepth: 100}, // day 5 had no pageview
		{Path: "/blog", Duration: 60000, MaxScrollDepth: 100},
	}

	funnel := engine.contentFunnel(pvs, engs)

	require.Len(t, funnel, 2)

	day1 := funnel[0]
	assert.Equal(t, 1, day1.Day)
	assert.Equal(t, 3, day1.UniqueVisitors, "v1, 9.9.9.9, anon")
	assert.Zero(t, day1.AvgDuration)
	assert.Zero(t, day1.ReadCompletionRate)

	day7 := funnel[1]
	assert.Equal(t, 7, day7.Day)
	assert.Equal(t, 2, day7.UniqueVisitors)
	assert.Equal(t, 35, day7.AvgDuration)
	assert.Equal(t, 80, day7.AvgScrollDepth)
	assert.Equal(t, 100, day7.ReadCompletionRate)
}

func TestContentEngagement_ReadCompletionThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration int
		scroll   int
		want     int // readCompletionRate
	}{
		{name: "both at threshold", duration: 30000, scroll: 75, want: 100},
		{name: "scroll below threshold", duration: 30000, scroll: 74, want: 0},
		{name: "duration below threshold", duration: 29999, scroll: 75, want: 0},
		{name: "both above threshold", duration: 45000, scroll: 100, want: 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engs := []*models.EngagementEvent{
				{Path: "/blog", Duration: tt.duration, MaxScrollDepth: tt.scroll, SessionID: "s1"},
			}

			entries := contentEngagement(engs, map[string]int{"/blog": 4})

			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].ReadCompletionRate)
		})
	}
}

func TestContentEngagement_AveragesAndSort(t *testing.T) {
	t.Parallel()

	engs := []*models.EngagementEvent{
		{Path: "/blog", Duration: 40000, MaxScrollDepth: 80, SessionID: "s1"},
		{Path: "/blog", Duration: 20000, MaxScrollDepth: 40, SessionID: "s2"},
		{Path: "/about", Duration: 10000, MaxScrollDepth: 20, SessionID: "s3"},
		{Path: "", Duration: 99000, MaxScrollDepth: 100, SessionID: "s4"},
	}
	pageCounts := map[string]int{"/blog": 10, "/about": 2}

	entries := contentEngagement(engs, pageCounts)

	require.Len(t, entries, 2)

	blog := entries[0]
	assert.Equal(t, "/blog", blog.Path)
	assert.Equal(t, 10, blog.TotalViews)
	assert.Equal(t, 30, blog.AvgDuration)
	assert.Equal(t, 60, blog.AvgScrollDepth)
	assert.Equal(t, 50, blog.ReadCompletionRate)

	assert.Equal(t, "/about", entries[1].Path)
}

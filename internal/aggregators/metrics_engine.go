package aggregators

import (
	"sort"
	"strings"
	"time"

	"site-analytics/internal/models"
)

// EngineOptions name the reserved paths excluded from aggregation and the
// path prefix of the content series measured by the day funnel.
type EngineOptions struct {
	DashboardPath    string
	TestPathPrefix   string
	FunnelPathPrefix string
}

// MetricsEngine computes the dashboard aggregate from the full event store
// contents. It is a pure function of its inputs plus now: no I/O, no hidden
// state, byte-identical output for identical inputs.
//
// Rows whose path is empty, the dashboard's own route, or test traffic are
// excluded from every metric; rows with unparsable timestamps contribute
// nothing to time-windowed counts but still count everywhere else.
type MetricsEngine interface {
	Compute(pageViews []*models.PageViewEvent, engagements []*models.EngagementEvent, now time.Time) *models.AggregateResult
}

type metricsEngine struct {
	opts EngineOptions
}

func NewMetricsEngine(opts EngineOptions) MetricsEngine {
	return &metricsEngine{opts: opts}
}

func (e *metricsEngine) Compute(pageViews []*models.PageViewEvent, engagements []*models.EngagementEvent, now time.Time) *models.AggregateResult {
	pvs := make([]*models.PageViewEvent, 0, len(pageViews))
	for _, pv := range pageViews {
		if e.includePath(pv.Path) {
			pvs = append(pvs, pv)
		}
	}
	engs := make([]*models.EngagementEvent, 0, len(engagements))
	for _, eng := range engagements {
		if e.includePath(eng.Path) {
			engs = append(engs, eng)
		}
	}

	pageCounts := countByPath(pvs)

	result := models.NewEmptyAggregateResult()
	result.Summary = e.summarize(pvs, now)
	result.Daily = e.dailySeries(pvs, now)
	result.Pages = pagesList(pageCounts)
	result.Devices = deviceSplit(pvs)
	result.TopCities = topCities(pvs)
	result.Browsers = browserBreakdown(pvs)
	result.Engagement = engagementSummary(pvs, buildSessions(pvs), joinEngagements(engs))
	result.RamadanFunnel = e.contentFunnel(pvs, engs)
	result.ContentEngagement = contentEngagement(engs, pageCounts)
	return result
}

func (e *metricsEngine) includePath(path string) bool {
	if path == "" {
		return false
	}
	if path == e.opts.DashboardPath {
		return false
	}
	if strings.HasPrefix(path, e.opts.TestPathPrefix) {
		return false
	}
	return true
}

func (e *metricsEngine) summarize(pvs []*models.PageViewEvent, now time.Time) models.Summary {
	todayStr := now.Format("2006-01-02")
	weekAgo := now.Add(-7 * 24 * time.Hour)

	summary := models.Summary{TotalViews: len(pvs)}
	paths := map[string]struct{}{}
	visitors := map[string]struct{}{}
	for _, pv := range pvs {
		if dateOf(pv.Timestamp) == todayStr {
			summary.TodayViews++
		}
		if t, ok := parseTimestamp(pv.Timestamp); ok && !t.Before(weekAgo) {
			summary.WeekViews++
		}
		if pv.Path != "" {
			paths[pv.Path] = struct{}{}
		}
		if id := visitorKey(pv); id != "" {
			visitors[id] = struct{}{}
		}
	}
	summary.UniquePaths = len(paths)
	summary.UniqueVisitors = len(visitors)
	return summary
}

func (e *metricsEngine) dailySeries(pvs []*models.PageViewEvent, now time.Time) []models.DailyViews {
	thirtyAgo := now.Add(-30 * 24 * time.Hour)

	counts := map[string]int{}
	for _, pv := range pvs {
		date := dateOf(pv.Timestamp)
		if date == "" {
			continue
		}
		if t, ok := parseTimestamp(pv.Timestamp); !ok || t.Before(thirtyAgo) {
			continue
		}
		counts[date]++
	}

	dates := sortedKeys(counts)
	daily := make([]models.DailyViews, 0, len(dates))
	for _, date := range dates {
		daily = append(daily, models.DailyViews{Date: date, Views: counts[date]})
	}
	return daily
}

func countByPath(pvs []*models.PageViewEvent) map[string]int {
	counts := map[string]int{}
	for _, pv := range pvs {
		if pv.Path != "" {
			counts[pv.Path]++
		}
	}
	return counts
}

func pagesList(pageCounts map[string]int) []models.PageViews {
	pages := make([]models.PageViews, 0, len(pageCounts))
	for path, views := range pageCounts {
		pages = append(pages, models.PageViews{Path: path, Views: views})
	}
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Views != pages[j].Views {
			return pages[i].Views > pages[j].Views
		}
		return pages[i].Path < pages[j].Path
	})
	return pages
}

// deviceSplit classifies on screen width: anything reported between 1 and
// 767 pixels is mobile. A missing or zero width counts as desktop; that is
// the documented default, not an accident.
func deviceSplit(pvs []*models.PageViewEvent) models.Devices {
	devices := models.Devices{}
	for _, pv := range pvs {
		if pv.ScreenWidth > 0 && pv.ScreenWidth < 768 {
			devices.Mobile++
		} else {
			devices.Desktop++
		}
	}
	return devices
}

func topCities(pvs []*models.PageViewEvent) []models.CityViews {
	type cityKey struct {
		city, country, region string
	}
	counts := map[cityKey]int{}
	for _, pv := range pvs {
		if pv.City == "" || pv.City == "Unknown" {
			continue
		}
		counts[cityKey{pv.City, pv.Country, pv.Region}]++
	}

	cities := make([]models.CityViews, 0, len(counts))
	for key, views := range counts {
		cities = append(cities, models.CityViews{City: key.city, Country: key.country, Region: key.region, Views: views})
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].Views != cities[j].Views {
			return cities[i].Views > cities[j].Views
		}
		if cities[i].City != cities[j].City {
			return cities[i].City < cities[j].City
		}
		if cities[i].Country != cities[j].Country {
			return cities[i].Country < cities[j].Country
		}
		return cities[i].Region < cities[j].Region
	})
	if len(cities) > 15 {
		cities = cities[:15]
	}
	return cities
}

func browserBreakdown(pvs []*models.PageViewEvent) []models.BrowserViews {
	counts := map[string]int{}
	for _, pv := range pvs {
		name := pv.Browser
		if name == "" {
			name = "Other"
		}
		counts[name]++
	}

	browsers := make([]models.BrowserViews, 0, len(counts))
	for _, name := range sortedKeys(counts) {
		browsers = append(browsers, models.BrowserViews{Name: name, Views: counts[name]})
	}
	sort.SliceStable(browsers, func(i, j int) bool {
		return browsers[i].Views > browsers[j].Views
	})
	return browsers
}

// dateOf truncates an ISO timestamp to its calendar date. Both sides of
// every calendar-date comparison use this same truncation.
func dateOf(timestamp string) string {
	if len(timestamp) < 10 {
		return ""
	}
	return timestamp[:10]
}

func parseTimestamp(timestamp string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

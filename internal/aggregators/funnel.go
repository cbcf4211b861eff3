package aggregators

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"site-analytics/internal/models"
)

// A read-complete engagement scrolled to at least 75% and dwelt at least 30
// seconds, used as a proxy for "finished reading".
const (
	readCompleteMinScrollPct  = 75
	readCompleteMinDurationMs = 30000
)

// dayPattern extracts the series day number from a path: digits following a
// "day=" query parameter or a path segment separator.
var dayPattern = regexp.MustCompile(`(?:day=|/)(\d+)`)

// extractDay returns the day a funnel path belongs to; paths with no day
// marker bucket into day 1.
func extractDay(path string) int {
	match := dayPattern.FindStringSubmatch(path)
	if match == nil {
		return 1
	}
	day, err := strconv.Atoi(match[1])
	if err != nil {
		return 1
	}
	return day
}

type funnelAccumulator struct {
	visitors        map[string]struct{}
	totalDuration   int
	totalScroll     int
	engagementCount int
	readComplete    int
}

// contentFunnel measures retention across the multi-day content series
// under the funnel path prefix: per day, distinct visitors plus engagement
// quality. Engagement rows for a day nobody viewed are dropped, matching
// the pageview-led shape of the funnel.
func (e *metricsEngine) contentFunnel(pvs []*models.PageViewEvent, engs []*models.EngagementEvent) []models.FunnelDay {
	byDay := map[int]*funnelAccumulator{}

	for _, pv := range pvs {
		if !strings.HasPrefix(pv.Path, e.opts.FunnelPathPrefix) {
			continue
		}
		day := extractDay(pv.Path)
		acc, ok := byDay[day]
		if !ok {
			acc = &funnelAccumulator{visitors: map[string]struct{}{}}
			byDay[day] = acc
		}
		// Funnel visitor identity is best-effort: any identifier beats none
		visitor := pv.VisitorID
		if visitor == "" {
			visitor = pv.IP
		}
		if visitor == "" {
			visitor = pv.SessionID
		}
		if visitor == "" {
			visitor = "anon"
		}
		acc.visitors[visitor] = struct{}{}
	}

	for _, eng := range engs {
		if !strings.HasPrefix(eng.Path, e.opts.FunnelPathPrefix) {
			continue
		}
		acc, ok := byDay[extractDay(eng.Path)]
		if !ok {
			continue
		}
		acc.totalDuration += eng.Duration
		acc.totalScroll += eng.MaxScrollDepth
		acc.engagementCount++
		if eng.MaxScrollDepth >= readCompleteMinScrollPct && eng.Duration >= readCompleteMinDurationMs {
			acc.readComplete++
		}
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	funnel := make([]models.FunnelDay, 0, len(days))
	for _, day := range days {
		acc := byDay[day]
		entry := models.FunnelDay{Day: day, UniqueVisitors: len(acc.visitors)}
		if acc.engagementCount > 0 {
			entry.AvgDuration = int(math.Round(float64(acc.totalDuration) / float64(acc.engagementCount) / 1000))
			entry.AvgScrollDepth = int(math.Round(float64(acc.totalScroll) / float64(acc.engagementCount)))
			entry.ReadCompletionRate = roundPct(acc.readComplete, acc.engagementCount)
		}
		funnel = append(funnel, entry)
	}
	return funnel
}

// contentEngagement reports engagement quality per path across the whole
// site, joined with the pageview counts for context.
func contentEngagement(engs []*models.EngagementEvent, pageCounts map[string]int) []models.ContentEngagement {
	type contentAccumulator struct {
		totalDuration int
		totalScroll   int
		count         int
		readComplete  int
	}
	byPath := map[string]*contentAccumulator{}

	for _, eng := range engs {
		if eng.Path == "" {
			continue
		}
		acc, ok := byPath[eng.Path]
		if !ok {
			acc = &contentAccumulator{}
			byPath[eng.Path] = acc
		}
		acc.totalDuration += eng.Duration
		acc.totalScroll += eng.MaxScrollDepth
		acc.count++
		if eng.MaxScrollDepth >= readCompleteMinScrollPct && eng.Duration >= readCompleteMinDurationMs {
			acc.readComplete++
		}
	}

	entries := make([]models.ContentEngagement, 0, len(byPath))
	for path, acc := range byPath {
		entry := models.ContentEngagement{
			Path:       path,
			TotalViews: pageCounts[path],
		}
		if acc.count > 0 {
			entry.AvgDuration = int(math.Round(float64(acc.totalDuration) / float64(acc.count) / 1000))
			entry.AvgScrollDepth = int(math.Round(float64(acc.totalScroll) / float64(acc.count)))
			entry.ReadCompletionRate = roundPct(acc.readComplete, acc.count)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalViews != entries[j].TotalViews {
			return entries[i].TotalViews > entries[j].TotalViews
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

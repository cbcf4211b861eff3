package aggregators

import (
	"math"

	"site-analytics/internal/models"
)

const legacySessionPrefix = "legacy_"

// An engaged session has spent strictly more than 10 seconds on site and
// scrolled strictly past the halfway mark.
const (
	engagedMinDurationMs = 10000
	engagedMinScrollPct  = 50
)

// SessionKey derives the grouping key of a pageview: the client-supplied
// sessionId when present, otherwise the deterministic synthesis
// "legacy_<ip>_<date>" so that same-IP, same-day anonymous traffic collapses
// into one session. The dashboard and stored history depend on this exact
// format.
func SessionKey(pv *models.PageViewEvent) string {
	if pv.SessionID != "" {
		return pv.SessionID
	}
	ip := pv.IP
	if ip == "" {
		ip = "unknown"
	}
	date := dateOf(pv.Timestamp)
	if date == "" {
		date = "nodate"
	}
	return legacySessionPrefix + ip + "_" + date
}

// visitorKey identifies a visitor: visitorId when present, else the row's
// IP. Rows resolving to empty or "Unknown" carry no visitor identity and
// are excluded from visitor counting.
func visitorKey(pv *models.PageViewEvent) string {
	id := pv.VisitorID
	if id == "" {
		id = pv.IP
	}
	if id == "Unknown" {
		return ""
	}
	return id
}

type sessionStat struct {
	pageCount int
	visitorID string
}

type sessionEngagement struct {
	totalDuration int // milliseconds
	maxScroll     int
}

func buildSessions(pvs []*models.PageViewEvent) map[string]*sessionStat {
	sessions := map[string]*sessionStat{}
	for _, pv := range pvs {
		key := SessionKey(pv)
		stat, ok := sessions[key]
		if !ok {
			owner := pv.VisitorID
			if owner == "" {
				owner = pv.IP
			}
			if owner == "" {
				owner = "unknown"
			}
			stat = &sessionStat{visitorID: owner}
			sessions[key] = stat
		}
		stat.pageCount++
	}
	return sessions
}

// joinEngagements accumulates engagement rows keyed by their literal
// sessionId. Rows without a sessionId cannot be joined to any session, and
// legacy keys are synthesized only on the pageview side, so fully anonymous
// sessions never acquire engagement data. That asymmetry is part of the
// stored-data contract and is preserved here.
func joinEngagements(engs []*models.EngagementEvent) map[string]*sessionEngagement {
	bySession := map[string]*sessionEngagement{}
	for _, eng := range engs {
		if eng.SessionID == "" {
			continue
		}
		stat, ok := bySession[eng.SessionID]
		if !ok {
			stat = &sessionEngagement{}
			bySession[eng.SessionID] = stat
		}
		stat.totalDuration += eng.Duration
		if eng.MaxScrollDepth > stat.maxScroll {
			stat.maxScroll = eng.MaxScrollDepth
		}
	}
	return bySession
}

func engagementSummary(pvs []*models.PageViewEvent, sessions map[string]*sessionStat, engagementsBySession map[string]*sessionEngagement) models.EngagementSummary {
	summary := models.EngagementSummary{}

	totalSessions := len(sessions)
	if totalSessions > 0 {
		singlePage := 0
		for _, stat := range sessions {
			if stat.pageCount == 1 {
				singlePage++
			}
		}
		summary.BounceRate = roundPct(singlePage, totalSessions)
		summary.AvgPagesPerSession = math.Round(float64(len(pvs))/float64(totalSessions)*10) / 10
	}

	engaged := 0
	withEngagement := 0
	totalDuration := 0
	for key := range sessions {
		eng, ok := engagementsBySession[key]
		if !ok {
			continue
		}
		withEngagement++
		totalDuration += eng.totalDuration
		if eng.totalDuration > engagedMinDurationMs && eng.maxScroll > engagedMinScrollPct {
			engaged++
		}
	}
	if withEngagement > 0 {
		summary.EngagementRate = roundPct(engaged, withEngagement)
		summary.AvgSessionDuration = int(math.Round(float64(totalDuration) / float64(withEngagement) / 1000))
	}

	summary.NewVisitors, summary.ReturningVisitors = visitorSplit(pvs)
	return summary
}

// visitorSplit groups session keys per visitor; a visitor with more than one
// distinct session is returning.
func visitorSplit(pvs []*models.PageViewEvent) (newVisitors, returningVisitors int) {
	sessionsByVisitor := map[string]map[string]struct{}{}
	for _, pv := range pvs {
		id := visitorKey(pv)
		if id == "" {
			continue
		}
		set, ok := sessionsByVisitor[id]
		if !ok {
			set = map[string]struct{}{}
			sessionsByVisitor[id] = set
		}
		set[SessionKey(pv)] = struct{}{}
	}

	for _, set := range sessionsByVisitor {
		if len(set) > 1 {
			returningVisitors++
		} else {
			newVisitors++
		}
	}
	return newVisitors, returningVisitors
}

func roundPct(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	visitorCount    = 40 // distinct visitors
	pagesPerVisitor = 4  // pageviews each visitor produces
)

var (
	paths = []string{"/", "/about", "/blog/launch", "/ramadan", "/ramadan?day=7"}
	ips   = []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type ackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type eventToSend struct {
	index    int
	jsonData []byte
	wantOK   bool
}

// main runs the e2e scenario: 001_ingest_and_read
//
// This scenario exercises the full write-then-read flow: it submits a
// deterministic mix of pageview, engagement, and scroll events to the
// tracking API, then fetches the aggregate document and checks it against
// the known totals.
//
// What it tests:
//   - Event submission via POST /events, always acknowledged with HTTP 200
//   - Malformed payloads acknowledged with {"status":"error"} and never 4xx/5xx
//   - Reserved-path traffic stored but excluded from the aggregate
//   - Aggregate computation via GET /analytics after the writes
//   - Cache behavior: two reads inside the TTL return identical bytes
//
// Expected results:
//   - Every submission returns HTTP 200
//   - Well-formed events ack with status "ok", malformed with status "error"
//   - summary.totalViews equals the countable pageviews sent
//   - The funnel reports days 1 and 7 for the /ramadan series
//   - Back-to-back reads return byte-identical documents
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the analytics API server
	dateUTC := time.Now().UTC().Format("2006-01-02")
	parallel := 4 // Number of concurrent event submissions

	fmt.Println("Starting e2e scenario: 001_ingest_and_read")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DATE_UTC: %s\n", dateUTC)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Println()

	events, countableViews := generateEvents(dateUTC)
	fmt.Printf("Generated %d events (%d countable pageviews)\n", len(events), countableViews)
	fmt.Println()

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var okAcks int64
	var errorAcks int64
	var non200 int64

	for _, event := range events {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(e eventToSend) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			ack, statusCode, err := sendEvent(baseURL, e.jsonData)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("event %d: %w", e.index, err))
				mu.Unlock()
				return
			}
			if statusCode != http.StatusOK {
				atomic.AddInt64(&non200, 1)
				mu.Lock()
				errors = append(errors, fmt.Errorf("event %d: HTTP %d, want 200", e.index, statusCode))
				mu.Unlock()
				return
			}
			switch ack.Status {
			case "ok":
				atomic.AddInt64(&okAcks, 1)
			case "error":
				atomic.AddInt64(&errorAcks, 1)
			}
			if e.wantOK && ack.Status != "ok" {
				mu.Lock()
				errors = append(errors, fmt.Errorf("event %d: ack %q (%s), want ok", e.index, ack.Status, ack.Message))
				mu.Unlock()
			}
			if !e.wantOK && ack.Status != "error" {
				mu.Lock()
				errors = append(errors, fmt.Errorf("event %d: ack %q, want error", e.index, ack.Status))
				mu.Unlock()
			}
		}(event)
	}

	wg.Wait()

	fmt.Println("=== Submission statistics ===")
	fmt.Printf("Events sent: %d\n", len(events))
	fmt.Printf("OK acks: %d\n", atomic.LoadInt64(&okAcks))
	fmt.Printf("Error acks: %d\n", atomic.LoadInt64(&errorAcks))
	fmt.Printf("Non-200 responses: %d\n", atomic.LoadInt64(&non200))
	fmt.Println()

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	// Read the aggregate twice: first read recomputes, second one must come
	// from the cache with identical bytes.
	firstRead, err := fetchAggregate(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: first aggregate read failed: %v\n", err)
		os.Exit(1)
	}
	secondRead, err := fetchAggregate(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: second aggregate read failed: %v\n", err)
		os.Exit(1)
	}
	if !bytes.Equal(firstRead, secondRead) {
		fmt.Fprintf(os.Stderr, "ERROR: back-to-back reads returned different documents\n")
		os.Exit(1)
	}

	var result struct {
		Summary struct {
			TotalViews int `json:"totalViews"`
		} `json:"summary"`
		RamadanFunnel []struct {
			Day            int `json:"day"`
			UniqueVisitors int `json:"uniqueVisitors"`
		} `json:"ramadanFunnel"`
	}
	if err := json.Unmarshal(firstRead, &result); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to decode aggregate: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("summary.totalViews: %d (want >= %d)\n", result.Summary.TotalViews, countableViews)
	fmt.Printf("ramadanFunnel days: %d\n", len(result.RamadanFunnel))

	// The store may hold rows from earlier runs, so totals are a lower bound.
	if result.Summary.TotalViews < countableViews {
		fmt.Fprintf(os.Stderr, "ERROR: totalViews %d below the %d countable views just sent\n",
			result.Summary.TotalViews, countableViews)
		os.Exit(1)
	}
	if len(result.RamadanFunnel) < 2 {
		fmt.Fprintf(os.Stderr, "ERROR: expected funnel data for days 1 and 7, got %d entries\n", len(result.RamadanFunnel))
		os.Exit(1)
	}

	fmt.Println("Scenario completed successfully")
}

// generateEvents builds the deterministic event mix: pageviews for every
// visitor, an engagement per session, scroll milestones on the blog, plus
// reserved-path and malformed submissions that must be acked but never
// counted.
func generateEvents(dateUTC string) ([]eventToSend, int) {
	events := make([]eventToSend, 0, visitorCount*(pagesPerVisitor+2))
	countableViews := 0
	index := 0

	addJSON := func(payload map[string]any, wantOK bool) {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		events = append(events, eventToSend{index: index, jsonData: jsonData, wantOK: wantOK})
		index++
	}

	for v := 0; v < visitorCount; v++ {
		visitorID := fmt.Sprintf("vis-%03d", v)
		sessionID := fmt.Sprintf("sess-%03d", v)
		ip := ips[v%len(ips)]
		ua := userAgents[v%len(userAgents)]

		for p := 0; p < pagesPerVisitor; p++ {
			path := paths[(v+p)%len(paths)]
			timestamp := fmt.Sprintf("%sT09:%02d:%02d.000Z", dateUTC, v%60, p)
			addJSON(map[string]any{
				"eventType": "pageview",
				"timestamp": timestamp,
				"path":      path,
				"userAgent": ua,
				"ip":        ip,
				"sessionId": sessionID,
				"visitorId": visitorID,
				"pageIndex": p + 1,
			}, true)
			countableViews++
		}

		addJSON(map[string]any{
			"eventType":      "engagement",
			"timestamp":      fmt.Sprintf("%sT09:%02d:59.000Z", dateUTC, v%60),
			"path":           paths[v%len(paths)],
			"sessionId":      sessionID,
			"visitorId":      visitorID,
			"duration":       15000 + v*1000,
			"maxScrollDepth": 40 + v%60,
		}, true)

		addJSON(map[string]any{
			"eventType": "scroll",
			"path":      "/blog/launch",
			"sessionId": sessionID,
			"depth":     25 * (1 + v%4),
		}, true)
	}

	// Reserved-path traffic: acked ok, excluded from every metric
	addJSON(map[string]any{"eventType": "pageview", "path": "/dashboard"}, true)
	addJSON(map[string]any{"eventType": "pageview", "path": "/test/synthetic"}, true)

	// Malformed submissions: acked with status "error"
	addJSON(map[string]any{"eventType": "conversion", "path": "/"}, false)
	events = append(events, eventToSend{index: index, jsonData: []byte("{not json"), wantOK: false})
	index++

	return events, countableViews
}

func sendEvent(baseURL string, jsonData []byte) (*ackResponse, int, error) {
	req, err := http.NewRequest("POST", baseURL+"/events", bytes.NewReader(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	var ack ackResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode ack: %w", err)
	}
	return &ack, resp.StatusCode, nil
}

func fetchAggregate(baseURL string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(baseURL + "/analytics")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d, want 200", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

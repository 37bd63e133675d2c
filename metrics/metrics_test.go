package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func scrape(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(promhttp.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return string(body)
}

func TestMetricsEndpoint(t *testing.T) {
	// Initialize metrics - including vector metrics to ensure they appear
	SetChannelsTotal(0)
	RecordChannelMutation("init")
	RecordPersistFailure("init")
	RecordCorruptLoad()
	RecordPlayback(true)
	RecordHealthCheckFailure()

	output := scrape(t)

	expectedMetrics := []string{
		"iptv_player_channels",
		"iptv_player_channel_mutations_total",
		"iptv_player_persist_failures_total",
		"iptv_player_corrupt_loads_total",
		"iptv_player_playback_requests_total",
		"iptv_player_health_check_failures_total",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(output, metric) {
			t.Errorf("Expected metric %s not found in output", metric)
		}
	}
}

func TestMetricsValues(t *testing.T) {
	SetChannelsTotal(3)

	output := scrape(t)

	if !strings.Contains(output, "iptv_player_channels 3") {
		t.Errorf("Expected to find iptv_player_channels 3 in output")
	}
}

func TestMetricsLabels(t *testing.T) {
	RecordChannelMutation("append")
	RecordChannelMutation("remove")
	RecordPersistFailure("write")
	RecordPlayback(false)

	output := scrape(t)

	expectedLabels := []string{
		`operation="append"`,
		`operation="remove"`,
		`stage="write"`,
		`result="error"`,
	}

	for _, label := range expectedLabels {
		if !strings.Contains(output, label) {
			t.Errorf("Expected to find label %s in output", label)
		}
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChannelsTotal tracks the number of channels in the list
	ChannelsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_player_channels",
		Help: "Number of channels in the channel list",
	})

	// ChannelMutations tracks list mutations by operation (append, replace, remove)
	ChannelMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_player_channel_mutations_total",
		Help: "Total number of channel list mutations",
	}, []string{"operation"})

	// PersistFailures tracks snapshot writes that could not be completed
	PersistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_player_persist_failures_total",
		Help: "Total number of failed channel list writes",
	}, []string{"stage"})

	// CorruptLoads tracks loads that fell back to the default channels
	CorruptLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_player_corrupt_loads_total",
		Help: "Total number of loads that found corrupt persisted data",
	})

	// PlaybackRequests tracks play requests by outcome (ok, error)
	PlaybackRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_player_playback_requests_total",
		Help: "Total number of playback requests sent to the player",
	}, []string{"result"})

	// HealthCheckFailures tracks health check failures
	HealthCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_player_health_check_failures_total",
		Help: "Total number of health check failures",
	})
)

// SetChannelsTotal sets the number of channels in the list
func SetChannelsTotal(count int) {
	ChannelsTotal.Set(float64(count))
}

// RecordChannelMutation increments the mutation counter for an operation
func RecordChannelMutation(operation string) {
	ChannelMutations.WithLabelValues(operation).Inc()
}

// RecordPersistFailure increments the persist failure counter.
// stage is "encode" or "write".
func RecordPersistFailure(stage string) {
	PersistFailures.WithLabelValues(stage).Inc()
}

// RecordCorruptLoad increments the corrupt load counter
func RecordCorruptLoad() {
	CorruptLoads.Inc()
}

// RecordPlayback increments the playback counter; ok selects the result label
func RecordPlayback(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	PlaybackRequests.WithLabelValues(result).Inc()
}

// RecordHealthCheckFailure increments the health check failure counter
func RecordHealthCheckFailure() {
	HealthCheckFailures.Inc()
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	assert.NotNil(t, m.StageDuration)
	assert.NotNil(t, m.StageErrors)
	assert.NotNil(t, m.TilesProcessed)
	assert.NotNil(t, m.RecoveredFaults)
	assert.NotNil(t, m.ActiveStage)
}

func TestMetrics_Registration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	m.Register(reg)

	m.TilesProcessed.WithLabelValues("terrain").Add(100)
	assert.Equal(t, 100.0, testutil.ToFloat64(m.TilesProcessed.WithLabelValues("terrain")))

	m.ActiveStage.WithLabelValues("terrain").Set(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveStage.WithLabelValues("terrain")))
}

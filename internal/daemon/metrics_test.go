package daemon

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.IncEventsSent()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncEventsDropped()
	m.IncBroadcasts()
	m.IncStaleRemoved()
	m.IncClientsTotal()
	m.SetConnectedClients(3)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.EventsSent)
	assert.Equal(t, int64(1), snap.EventsReceived)
	assert.Equal(t, int64(1), snap.EventsDropped)
	assert.Equal(t, int64(1), snap.Broadcasts)
	assert.Equal(t, int64(1), snap.StaleRemoved)
	assert.Equal(t, int64(1), snap.ClientsTotal)
	assert.Equal(t, int32(3), snap.ConnectedClients)
	assert.Equal(t, m.StartTime, snap.StartTime)
	assert.NotEmpty(t, snap.Uptime)
}

func TestMetricsSnapshot_IsImmutable(t *testing.T) {
	m := NewMetrics()
	m.IncEventsSent()
	snap := m.GetSnapshot()

	m.IncEventsSent()
	assert.Equal(t, int64(1), snap.EventsSent)
	assert.Equal(t, int64(2), m.GetSnapshot().EventsSent)
}

func TestMetricsConcurrency(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Go(func() {
			for j := 0; j < 100; j++ {
				m.IncEventsSent()
				m.IncBroadcasts()
				_ = m.GetSnapshot()
			}
		})
	}
	wg.Wait()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(5000), snap.EventsSent)
	assert.Equal(t, int64(5000), snap.Broadcasts)
}

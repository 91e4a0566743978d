package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PoolStats is a snapshot of the connection pool, exposed on the health endpoint
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`

	AcquireCount         int64         `json:"acquire_count"`
	AcquireDuration      time.Duration `json:"-"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
}

// Stats returns nil when the pool is not connected
func (db *PostgresDB) Stats() *PoolStats {
	if db.Pool == nil {
		return nil
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:           raw.TotalConns(),
		IdleConns:            raw.IdleConns(),
		AcquiredConns:        raw.AcquiredConns(),
		MaxConns:             raw.MaxConns(),
		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
	}
}

// MonitorPoolHealth logs pool pressure every interval until ctx is done.
// Placement locks book rows, so long acquire waits show up here first.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := db.Stats()
			if stats == nil || stats.MaxConns == 0 {
				continue
			}

			utilization := float64(stats.AcquiredConns) / float64(stats.MaxConns) * 100
			if utilization > 80 {
				log.Warn().
					Float64("utilization_pct", utilization).
					Int32("acquired", stats.AcquiredConns).
					Int32("max", stats.MaxConns).
					Msg("[MONITOR] high pool utilization")
			}

			if stats.AcquireCount > 0 {
				avg := stats.AcquireDuration / time.Duration(stats.AcquireCount)
				if avg > 100*time.Millisecond {
					log.Warn().Dur("avg_acquire", avg).Msg("[MONITOR] high acquire latency")
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

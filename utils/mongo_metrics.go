package utils

import (
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

// MongoMetrics is a snapshot of the driver's connection pool.
type MongoMetrics struct {
	ActiveConnections  int64
	CreatedConnections int64
	ClosedConnections  int64
	LastCheckTime      time.Time
}

var (
	activeConnections  atomic.Int64
	createdConnections atomic.Int64
	closedConnections  atomic.Int64
	lastCheck          atomic.Int64
)

// NewPoolMonitor counts pool connections as the driver opens and closes them
func NewPoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				createdConnections.Add(1)
			case event.ConnectionClosed:
				closedConnections.Add(1)
			case event.GetSucceeded:
				activeConnections.Add(1)
			case event.ConnectionReturned:
				activeConnections.Add(-1)
			default:
				return
			}
			lastCheck.Store(time.Now().UnixNano())
		},
	}
}

func GetMongoMetrics() MongoMetrics {
	m := MongoMetrics{
		ActiveConnections:  activeConnections.Load(),
		CreatedConnections: createdConnections.Load(),
		ClosedConnections:  closedConnections.Load(),
	}
	if ns := lastCheck.Load(); ns != 0 {
		m.LastCheckTime = time.Unix(0, ns)
	}
	return m
}

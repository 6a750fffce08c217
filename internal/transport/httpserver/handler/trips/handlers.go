package trips

import (
	tripsdomain "pocketcart/internal/domain/trips"
	"pocketcart/internal/metrics"
	"pocketcart/pkg/logger"
)

type Handlers struct {
	Trips   *tripsdomain.Service
	metrics *metrics.Metrics
	log     logger.Logger
}

func New(trips *tripsdomain.Service, m *metrics.Metrics, log logger.Logger) *Handlers {
	return &Handlers{
		Trips:   trips,
		metrics: m,
		log:     logger.OrNop(log),
	}
}

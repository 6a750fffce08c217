package lists

import (
	listsdomain "pocketcart/internal/domain/lists"
	"pocketcart/internal/metrics"
	"pocketcart/pkg/logger"
)

type Handlers struct {
	Lists   *listsdomain.Service
	metrics *metrics.Metrics
	log     logger.Logger
}

func New(lists *listsdomain.Service, m *metrics.Metrics, log logger.Logger) *Handlers {
	return &Handlers{
		Lists:   lists,
		metrics: m,
		log:     logger.OrNop(log),
	}
}

package snsd

import (
	"context"
	"time"
)

func (s *SNS) runJobs() {
	s.scheduler.Every(30).Seconds().SingletonMode().Do(s.probeRegistrar)
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.updateOrderMetrics)

	s.scheduler.StartAsync()
}

// probeRegistrar keeps the registrar sequence gauge current. A stalled
// gauge during active registrations is the first sign the query service is
// unreachable.
func (s *SNS) probeRegistrar() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	acc, err := s.cli.LoadAccount(ctx, s.cfg.RegistrarAccount)
	if err != nil {
		log.Error("load registrar account failed", "account", s.cfg.RegistrarAccount, "err", err)
		return
	}
	seq, err := acc.SequenceNumber()
	if err != nil {
		log.Error("parse registrar sequence failed", "sequence", acc.Sequence, "err", err)
		return
	}
	registrarSequence.Set(float64(seq))
}

func (s *SNS) updateOrderMetrics() {
	total, err := s.wdb.CountOrders()
	if err != nil {
		log.Error("count orders failed", "err", err)
		return
	}
	ordersTotal.Set(float64(total))
}

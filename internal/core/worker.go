package core

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/tpanh/rentd/internal/domain"
)

const ticker = 1 * time.Hour

// StartWorker runs the periodic bookkeeping sweep: invoices past their due
// date become overdue and stale invitations expire. The sweep also runs once
// at startup so a restarted instance catches up immediately.
func StartWorker(repository domain.Repository) {
	w := &worker{
		repository: repository,
		logger:     hclog.Default().Named("worker"),
	}

	go w.start()
}

type worker struct {
	repository domain.Repository
	logger     hclog.Logger
}

func (w *worker) start() {
	w.sweep()
	t := time.NewTicker(ticker)
	for range t.C {
		w.sweep()
	}
}

func (w *worker) sweep() {
	ctx := context.Background()
	now := time.Now().UTC()

	overdue, err := w.repository.MarkOverdueInvoices(ctx, now)
	if err != nil {
		w.logger.Error("Unable to mark overdue invoices", "err", err)
	} else if overdue > 0 {
		w.logger.Info("Marked invoices as overdue", "count", overdue)
	}

	expired, err := w.repository.ExpireStaleInvitations(ctx, now)
	if err != nil {
		w.logger.Error("Unable to expire stale invitations", "err", err)
	} else if expired > 0 {
		w.logger.Info("Expired stale invitations", "count", expired)
	}
}

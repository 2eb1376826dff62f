package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"chat-relay/contract"

	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*TelemetryWorker)(nil)

// TelemetryWorker periodically logs the server's own process metrics
// (CPU, RAM, status) together with chat state gauges. Observability
// only, no domain logic.
type TelemetryWorker struct {
	log       *slog.Logger
	interval  time.Duration
	registry  contract.IRegistry
	ledgerLen func() int
}

func NewTelemetryWorker(log *slog.Logger, interval time.Duration,
	registry contract.IRegistry, ledgerLen func() int) *TelemetryWorker {
	return &TelemetryWorker{log: log, interval: interval, registry: registry, ledgerLen: ledgerLen}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case <-ticker.C:
			w.report(p)
		}
	}
}

func (w *TelemetryWorker) report(p *process.Process) {
	cpu, err := p.CPUPercent()
	if err != nil {
		w.log.Error("Error while finding process cpu usage", "err", err)
		return
	}
	ram, err := p.MemoryPercent()
	if err != nil {
		w.log.Error("Error while finding process ram usage", "err", err)
		return
	}
	status, err := p.Status()
	if err != nil {
		w.log.Error("Error while finding process status", "err", err)
		return
	}

	sessions, rooms := w.registry.Counts()
	w.log.Info("Server health",
		"cpu_percent", cpu,
		"ram_percent", ram,
		"status", status,
		"sessions", sessions,
		"rooms", rooms,
		"ledger", w.ledgerLen())
}

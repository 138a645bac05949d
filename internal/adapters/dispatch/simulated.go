package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
)

// SimulatedDispatcher stands in for the telephony provider in environments
// without one. Every dispatch settles as completed immediately.
type SimulatedDispatcher struct {
	logger *slog.Logger
}

func NewSimulatedDispatcher(logger *slog.Logger) *SimulatedDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedDispatcher{logger: logger}
}

var _ collaborators.TelephonyDispatcher = (*SimulatedDispatcher)(nil)

func (d *SimulatedDispatcher) Dispatch(ctx context.Context, req collaborators.DispatchRequest) (domain.CommunicationLogEntry, error) {
	d.logger.InfoContext(ctx, "simulated dispatch",
		slog.String("type", string(req.Type)),
		slog.String("phone", req.PhoneNumber),
	)

	entry := domain.CommunicationLogEntry{
		Type:        req.Type,
		Direction:   domain.DirectionOutbound,
		Status:      domain.CommCompleted,
		Message:     req.Message,
		Timestamp:   time.Now(),
		InitiatedBy: req.InitiatedBy,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Type == domain.CommCall {
		entry.Duration = "0s"
	}
	return entry, nil
}

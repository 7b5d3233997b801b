package engine

import "go.uber.org/zap"

// Observer receives trace events from the search. The engine ships one
// zap-backed implementation; tests usually pass the nop observer.
type Observer interface {
	Placed(req *SessionRequirement, slot TimeSlot, room *Room, depth int)
	Backtracked(req *SessionRequirement, depth int)
	Skipped(req *SessionRequirement, reason FailureReason)
}

type nopObserver struct{}

func (nopObserver) Placed(*SessionRequirement, TimeSlot, *Room, int) {}
func (nopObserver) Backtracked(*SessionRequirement, int)             {}
func (nopObserver) Skipped(*SessionRequirement, FailureReason)       {}

// NopObserver discards all trace events.
var NopObserver Observer = nopObserver{}

type zapObserver struct {
	logger *zap.Logger
}

// NewZapObserver traces search events through the provided logger at
// debug level, with skips surfaced as warnings.
func NewZapObserver(logger *zap.Logger) Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapObserver{logger: logger}
}

func (o *zapObserver) Placed(req *SessionRequirement, slot TimeSlot, room *Room, depth int) {
	o.logger.Debug("requirement placed",
		zap.String("requirement", req.Key()),
		zap.String("day", slot.Day),
		zap.String("window", slot.Range().String()),
		zap.String("room", room.Label()),
		zap.Int("depth", depth),
	)
}

func (o *zapObserver) Backtracked(req *SessionRequirement, depth int) {
	o.logger.Debug("backtracked",
		zap.String("requirement", req.Key()),
		zap.Int("depth", depth),
	)
}

func (o *zapObserver) Skipped(req *SessionRequirement, reason FailureReason) {
	o.logger.Warn("requirement left unscheduled",
		zap.String("requirement", req.Key()),
		zap.String("reason", string(reason)),
	)
}

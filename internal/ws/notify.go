package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventRecommendationsUpdated = "recommendations_updated"

type RecommendationsUpdatedEvent struct {
	Type        string `json:"type"`
	CandidateID string `json:"candidate_id,omitempty"`
	Reason      string `json:"reason"`
	Timestamp   string `json:"timestamp"`
}

// Notifier pushes recommendation invalidations to connected candidates.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

// RecommendationsUpdated addresses every client when candidateID is uuid.Nil.
func (n *Notifier) RecommendationsUpdated(candidateID uuid.UUID, reason string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := RecommendationsUpdatedEvent{
		Type:      EventRecommendationsUpdated,
		Reason:    reason,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	if candidateID != uuid.Nil {
		evt.CandidateID = candidateID.String()
	}

	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Warn("ws event marshal failed", zap.Error(err))
		return
	}
	n.hub.Send(candidateID, b)
}

package ws

import (
	"encoding/json"
	"time"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

const (
	EventMatchComputed    = "match_computed"
	EventRankingCompleted = "ranking_completed"
)

type MatchComputedEvent struct {
	Type      string     `json:"type"`
	ProfileID uuid.UUID  `json:"profile_id"`
	VacancyID uuid.UUID  `json:"vacancy_id"`
	Score     float64    `json:"score"`
	MatchType match.Type `json:"match_type"`
	Timestamp string     `json:"timestamp"`
}

type RankingCompletedEvent struct {
	Type      string    `json:"type"`
	Kind      string    `json:"kind"`
	SubjectID uuid.UUID `json:"subject_id"`
	Results   int       `json:"results"`
	Skipped   int       `json:"skipped"`
	Timestamp string    `json:"timestamp"`
}

// Notifier turns matching events into hub broadcasts. A nil hub makes every call a no-op.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) MatchComputed(r match.Result) {
	n.send(MatchComputedEvent{
		Type:      EventMatchComputed,
		ProfileID: r.ProfileID,
		VacancyID: r.VacancyID,
		Score:     r.Total,
		MatchType: r.Type,
		Timestamp: n.timestamp(),
	})
}

func (n *Notifier) RankingCompleted(kind string, subjectID uuid.UUID, results, skipped int) {
	n.send(RankingCompletedEvent{
		Type:      EventRankingCompleted,
		Kind:      kind,
		SubjectID: subjectID,
		Results:   results,
		Skipped:   skipped,
		Timestamp: n.timestamp(),
	})
}

func (n *Notifier) timestamp() string {
	return n.now().UTC().Format(time.RFC3339)
}

func (n *Notifier) send(evt any) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}

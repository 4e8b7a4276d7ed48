package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

func TestNotifier_MatchComputedReachesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(client)

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	n := NewNotifier(hub)
	n.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	pid, vid := uuid.New(), uuid.New()
	n.MatchComputed(match.Result{ProfileID: pid, VacancyID: vid, Total: 0.75, Type: match.TypePartial})

	select {
	case msg := <-client.send:
		var evt MatchComputedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if evt.Type != EventMatchComputed || evt.ProfileID != pid || evt.MatchType != match.TypePartial {
			t.Fatalf("unexpected event %+v", evt)
		}
		if evt.Timestamp != "2026-03-01T00:00:00Z" {
			t.Fatalf("unexpected timestamp %s", evt.Timestamp)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message delivered")
	}
}

func TestNotifier_NilHubIsNoop(t *testing.T) {
	var n *Notifier
	n.MatchComputed(match.Result{})
	NewNotifier(nil).RankingCompleted("candidates", uuid.New(), 1, 0)
}

func TestHub_RegisterAfterStopClosesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	early := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(early)
	cancel()
	<-done

	if _, ok := <-early.send; ok {
		t.Fatalf("expected connected client to be closed on shutdown")
	}

	late := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(late)
	select {
	case _, ok := <-late.send:
		if ok {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("late client was never closed")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", hub.ClientCount())
	}
	hub.Unregister(late)
}

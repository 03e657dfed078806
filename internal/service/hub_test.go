package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/citygrid/appeals-service/internal/domain"
)

type recordingChannel struct {
	received [][]byte
	fail     bool
}

func (ch *recordingChannel) Send(data []byte) error {
	if ch.fail {
		return errors.New("send failed")
	}
	ch.received = append(ch.received, data)
	return nil
}

func sampleAppeal() domain.Appeal {
	return domain.Appeal{
		ID:         uuid.New(),
		TypeID:     1,
		SeverityID: 2,
		StatusID:   3,
		Source:     "operator",
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()

	ch1 := &recordingChannel{}
	ch2 := &recordingChannel{}

	hub.Register(ch1)
	hub.Register(ch2)
	if hub.Len() != 2 {
		t.Fatalf("expected 2 channels, got %d", hub.Len())
	}

	hub.Unregister(ch1)
	if hub.Len() != 1 {
		t.Fatalf("expected 1 channel, got %d", hub.Len())
	}

	// removing an already removed channel must not panic or change the set
	hub.Unregister(ch1)
	if hub.Len() != 1 {
		t.Fatalf("expected 1 channel after double unregister, got %d", hub.Len())
	}
}

func TestHubBroadcastReachesAllChannels(t *testing.T) {
	hub := NewHub()

	ch1 := &recordingChannel{}
	ch2 := &recordingChannel{}
	hub.Register(ch1)
	hub.Register(ch2)

	appeal := sampleAppeal()
	hub.Broadcast(domain.NewCreatedEvent(appeal))

	for i, ch := range []*recordingChannel{ch1, ch2} {
		if len(ch.received) != 1 {
			t.Fatalf("channel %d: expected 1 message, got %d", i, len(ch.received))
		}
	}

	want := `{"event_type":"create","id":"` + appeal.ID.String() + `"}`
	if string(ch1.received[0]) != want {
		t.Errorf("unexpected payload: got %s, want %s", ch1.received[0], want)
	}
}

func TestHubBroadcastPreservesOrderPerChannel(t *testing.T) {
	hub := NewHub()

	ch := &recordingChannel{}
	hub.Register(ch)

	appeal := sampleAppeal()
	hub.Broadcast(domain.NewCreatedEvent(appeal))
	hub.Broadcast(domain.NewUpdatedEvent(appeal))
	appeal.IsDeleted = true
	hub.Broadcast(domain.NewDeletedEvent(appeal))

	if len(ch.received) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(ch.received))
	}

	wantTypes := []string{`"event_type":"create"`, `"event_type":"update"`, `"event_type":"delete"`}
	for i, fragment := range wantTypes {
		if !strings.Contains(string(ch.received[i]), fragment) {
			t.Errorf("message %d: expected %s in %s", i, fragment, ch.received[i])
		}
	}
}

func TestHubBroadcastPrunesFailedChannels(t *testing.T) {
	hub := NewHub()

	ch1 := &recordingChannel{}
	ch2 := &recordingChannel{fail: true}
	ch3 := &recordingChannel{}
	hub.Register(ch1)
	hub.Register(ch2)
	hub.Register(ch3)

	hub.Broadcast(domain.NewCreatedEvent(sampleAppeal()))

	if len(ch1.received) != 1 {
		t.Errorf("channel 1: expected 1 message, got %d", len(ch1.received))
	}
	if len(ch3.received) != 1 {
		t.Errorf("channel 3: expected 1 message, got %d", len(ch3.received))
	}
	if hub.Len() != 2 {
		t.Errorf("expected failed channel to be pruned, registry has %d", hub.Len())
	}

	// the survivor set still receives later broadcasts
	hub.Broadcast(domain.NewCreatedEvent(sampleAppeal()))
	if len(ch1.received) != 2 || len(ch3.received) != 2 {
		t.Errorf("survivors missed a broadcast: ch1=%d ch3=%d", len(ch1.received), len(ch3.received))
	}
}

func TestHubBroadcastWithoutChannels(t *testing.T) {
	hub := NewHub()
	// must not panic
	hub.Broadcast(domain.NewCreatedEvent(sampleAppeal()))
}

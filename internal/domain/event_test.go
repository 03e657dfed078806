package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreatedEventWireShape(t *testing.T) {
	id := uuid.MustParse("6f1c1f6e-9dca-4b0a-9c7d-0a7e2b3c4d5e")

	data, err := json.Marshal(NewCreatedEvent(Appeal{ID: id}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"event_type":"create","id":"6f1c1f6e-9dca-4b0a-9c7d-0a7e2b3c4d5e"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestUpdatedEventWireShape(t *testing.T) {
	id := uuid.MustParse("6f1c1f6e-9dca-4b0a-9c7d-0a7e2b3c4d5e")
	reporter := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	appeal := Appeal{
		ID:           id,
		TypeID:       2,
		TypeName:     "noise",
		SeverityID:   1,
		SeverityName: "low",
		StatusID:     3,
		StatusName:   "in_progress",
		Location:     "entrance B",
		Description:  "loud music",
		Source:       "mobile",
		ReporterID:   &reporter,
		Payload:      map[string]any{"floor": "2"},
		CreatedAt:    at,
		UpdatedAt:    at,
	}

	data, err := json.Marshal(NewUpdatedEvent(appeal))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		EventType string         `json:"event_type"`
		Appeal    map[string]any `json:"appeal"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.EventType != "update" {
		t.Errorf("event_type = %q, want update", decoded.EventType)
	}
	if decoded.Appeal["id"] != id.String() {
		t.Errorf("id = %v", decoded.Appeal["id"])
	}
	if decoded.Appeal["reporter_id"] != reporter.String() {
		t.Errorf("reporter_id = %v", decoded.Appeal["reporter_id"])
	}
	if decoded.Appeal["assigned_to_id"] != nil {
		t.Errorf("assigned_to_id should be null, got %v", decoded.Appeal["assigned_to_id"])
	}
	if decoded.Appeal["created_at"] != "2025-03-14T09:26:53Z" {
		t.Errorf("created_at = %v", decoded.Appeal["created_at"])
	}
	if decoded.Appeal["is_deleted"] != false {
		t.Errorf("is_deleted = %v", decoded.Appeal["is_deleted"])
	}
	if _, ok := decoded.Appeal["payload"].(map[string]any); !ok {
		t.Errorf("payload should be an object, got %T", decoded.Appeal["payload"])
	}
}

func TestDeletedEventWireShape(t *testing.T) {
	id := uuid.MustParse("6f1c1f6e-9dca-4b0a-9c7d-0a7e2b3c4d5e")

	data, err := json.Marshal(NewDeletedEvent(Appeal{ID: id, IsDeleted: true}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"event_type":"delete","appeal":{"id":"6f1c1f6e-9dca-4b0a-9c7d-0a7e2b3c4d5e","is_deleted":true}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

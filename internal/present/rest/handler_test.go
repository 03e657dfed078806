package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/service"
	"github.com/citygrid/appeals-service/internal/usecase"
)

type stubAppealRepository struct {
	appeal domain.Appeal
}

func (r *stubAppealRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Appeal, error) {
	if r.appeal.ID != id {
		return domain.Appeal{}, domain.NotFoundError{Resource: "appeal"}
	}
	return r.appeal, nil
}

func (r *stubAppealRepository) List(ctx context.Context, offset, limit int, includeDeleted bool) ([]domain.Appeal, error) {
	return []domain.Appeal{r.appeal}, nil
}

func (r *stubAppealRepository) Insert(ctx context.Context, input usecase.CreateAppealInput, actor *uuid.UUID) (domain.Appeal, error) {
	r.appeal = domain.Appeal{
		ID:         uuid.New(),
		TypeID:     input.TypeID,
		SeverityID: input.SeverityID,
		StatusID:   input.StatusID,
		Location:   input.Location,
		Source:     input.Source,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	return r.appeal, nil
}

func (r *stubAppealRepository) Update(ctx context.Context, id uuid.UUID, patch usecase.UpdateAppealPatch, actor *uuid.UUID) (domain.Appeal, error) {
	if r.appeal.ID != id {
		return domain.Appeal{}, domain.NotFoundError{Resource: "appeal"}
	}
	if patch.IsDeleted != nil {
		r.appeal.IsDeleted = *patch.IsDeleted
	}
	return r.appeal, nil
}

func (r *stubAppealRepository) GetHistory(ctx context.Context, appealID uuid.UUID) ([]domain.AppealHistory, error) {
	return nil, nil
}

func newTestServer(t *testing.T, repo usecase.AppealRepository) (*httptest.Server, *service.Hub) {
	t.Helper()

	hub := service.NewHub()
	appealUC := usecase.NewAppealUsecase(repo, hub)
	handler := NewHandler(appealUC, nil, nil, nil, nil, nil, nil, nil, nil, hub)

	e := echo.New()
	handler.RegisterRoutes(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, hub
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/appeals"
}

func TestCreateAppealEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubAppealRepository{})

	body := `{"type_id":1,"severity_id":2,"status_id":1,"location":"yard","source":"operator"}`
	resp, err := http.Post(srv.URL+"/appeals", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestCreateAppealEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t, &stubAppealRepository{})

	resp, err := http.Post(srv.URL+"/appeals", "application/json", strings.NewReader(`{"type_id":1}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestGetAppealNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &stubAppealRepository{})

	resp, err := http.Get(srv.URL + "/appeals/" + uuid.NewString())
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestNotificationEndpointReceivesMutationEvents(t *testing.T) {
	srv, hub := newTestServer(t, &stubAppealRepository{})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// registration is part of the upgrade handler; wait for it
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	body := `{"type_id":1,"severity_id":2,"status_id":1,"source":"operator"}`
	resp, err := http.Post(srv.URL+"/appeals", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var event struct {
		EventType string `json:"event_type"`
		ID        string `json:"id"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event.EventType != "create" {
		t.Errorf("event_type = %q, want create", event.EventType)
	}
	if _, err := uuid.Parse(event.ID); err != nil {
		t.Errorf("id is not a uuid: %q", event.ID)
	}
}

func TestNotificationEndpointUnregistersOnClose(t *testing.T) {
	srv, hub := newTestServer(t, &stubAppealRepository{})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection was never unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

package http

import (
	stdhttp "net/http"
	"testing"

	domainCrew "timesheet-backend/internal/domain/crew"
)

func TestCrews_CRUD(t *testing.T) {
	s := newTestServer(t, 0)

	rec := s.do(stdhttp.MethodPost, "/api/v1/admins/crews", adminID, map[string]any{"name": "Night", "crewType": "PILOT", "leadId": adminID})
	expectStatus(t, rec, stdhttp.StatusUnprocessableEntity)
	if body := decode[ErrorResponse](t, rec); !containsFieldMsg(body.Details, "crewType", "TRUCK_DRIVER") {
		t.Fatalf("unexpected details: %+v", body)
	}

	rec = s.do(stdhttp.MethodPost, "/api/v1/admins/crews", adminID, map[string]any{"name": "Night", "crewType": "LABOR"})
	expectStatus(t, rec, stdhttp.StatusUnprocessableEntity)

	rec = s.do(stdhttp.MethodPost, "/api/v1/admins/crews", adminID, map[string]any{
		"name": "Night", "crewType": "LABOR", "leadId": adminID, "memberIds": []string{workerID},
	})
	expectStatus(t, rec, stdhttp.StatusCreated)
	c := decode[domainCrew.Crew](t, rec)
	if len(c.Members) != 2 {
		t.Fatalf("lead not injected: %+v", c.Members)
	}

	rec = s.do(stdhttp.MethodPut, "/api/v1/admins/crews/"+c.ID, adminID, map[string]any{"memberIds": []string{}})
	expectStatus(t, rec, stdhttp.StatusOK)
	got := decode[domainCrew.Crew](t, rec)
	if len(got.Members) != 1 || got.Members[0].ID != adminID {
		t.Fatalf("members after update = %+v", got.Members)
	}

	rec = s.do(stdhttp.MethodGet, "/api/v1/admins/crews", adminID, nil)
	expectStatus(t, rec, stdhttp.StatusOK)
	if list := decode[[]domainCrew.Crew](t, rec); len(list) != 1 {
		t.Fatalf("crews = %+v", list)
	}

	rec = s.do(stdhttp.MethodDelete, "/api/v1/admins/crews/"+c.ID, adminID, nil)
	expectStatus(t, rec, stdhttp.StatusNoContent)
	rec = s.do(stdhttp.MethodGet, "/api/v1/admins/crews/"+c.ID, adminID, nil)
	expectStatus(t, rec, stdhttp.StatusNotFound)
}

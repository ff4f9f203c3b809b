package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "timesheet-backend/internal/adapter/middleware"
	"timesheet-backend/internal/adapter/repository/gormrepo"
	"timesheet-backend/internal/domain/form"
	"timesheet-backend/internal/domain/user"
	"timesheet-backend/internal/infrastructure/db"
	ucApproval "timesheet-backend/internal/usecase/approval"
	"timesheet-backend/internal/usecase/autosave"
	ucCrew "timesheet-backend/internal/usecase/crew"
	"timesheet-backend/internal/usecase/export"
	"timesheet-backend/internal/usecase/passwordreset"
	"timesheet-backend/internal/usecase/reference"
	"timesheet-backend/internal/usecase/submission"
	"timesheet-backend/internal/usecase/template"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	adminID  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	workerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	db     *gorm.DB
	redis  *miniredis.Miniredis
	drafts *autosave.Buffer
	outbox *outbox
}

// newTestServer wires every handler over sqlite and miniredis.
// window is the autosave window; 0 writes drafts through.
func newTestServer(t *testing.T, window time.Duration) *testServer {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	templates := gormrepo.NewTemplateRepository(gdb)
	subs := gormrepo.NewSubmissionRepository(gdb)
	approvals := gormrepo.NewApprovalRepository(gdb)
	users := gormrepo.NewUserRepository(gdb)
	tags := gormrepo.NewTagRepository(gdb)
	codes := gormrepo.NewCostCodeRepository(gdb)
	sites := gormrepo.NewJobsiteRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	catalog := reference.NewCatalog(users, sites, codes, gormrepo.NewEquipmentRepository(gdb))
	approvalUC := ucApproval.NewUsecase(subs, approvals, tx, nil)
	submissionUC := submission.NewUsecase(templates, subs, tx, approvalUC, nil)
	drafts := autosave.New(submissionUC, window, nil)
	links := &outbox{}
	t.Cleanup(func() { _ = drafts.Close(context.Background()) })

	e := newEchoWithValidator()
	Register(e, Handlers{
		Health:      NewHandler(),
		Forms:       NewFormHandler(template.NewUsecase(templates, catalog, nil), submissionUC, export.NewUsecase(templates, subs, users, nil)),
		Submissions: NewSubmissionHandler(submissionUC, drafts),
		Approvals:   NewApprovalHandler(approvalUC),
		Reference:   NewReferenceHandler(reference.NewUsecase(tags, codes, sites, nil)),
		Crews:       NewCrewHandler(ucCrew.NewUsecase(gormrepo.NewCrewRepository(gdb), users, nil)),
		Tokens:      NewTokenHandler(passwordreset.NewUsecase(rdb, users, links, 30*time.Minute, nil)),
	}, mw.RequireUser())

	for _, u := range []user.User{
		{ID: adminID, Username: "ada", FirstName: "Ada", LastName: "Admin"},
		{ID: workerID, Username: "will", FirstName: "Will", LastName: "Worker"},
	} {
		u := u
		if err := users.Create(context.Background(), &u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	return &testServer{t: t, e: e, db: gdb, redis: mr, drafts: drafts, outbox: links}
}

// do sends a request as caller and returns the recorder.
func (s *testServer) do(method, path, caller string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if caller != "" {
		req.Header.Set(HeaderUserID, caller)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, want, rec.Body.String())
	}
}

// timesheetForm is an ACTIVE template with one required text field, an
// optional date and approval plus signature turned on.
func (s *testServer) timesheetForm() form.Template {
	s.t.Helper()
	rec := s.do(stdhttp.MethodPost, "/api/v1/admins/forms", adminID, map[string]any{
		"name":                "Daily Timesheet",
		"status":              "ACTIVE",
		"isApprovalRequired":  true,
		"isSignatureRequired": true,
		"groupings": []map[string]any{{
			"title": "Work",
			"order": 1,
			"fields": []map[string]any{
				{"label": "Task", "type": "TEXT", "required": true, "order": 2},
				{"label": "Day", "type": "DATE", "order": 1},
			},
		}},
	})
	expectStatus(s.t, rec, stdhttp.StatusCreated)
	return decode[form.Template](s.t, rec)
}

func fieldID(t *testing.T, tmpl form.Template, label string) string {
	t.Helper()
	for _, g := range tmpl.Groupings {
		for _, f := range g.Fields {
			if f.Label == label {
				return f.ID
			}
		}
	}
	t.Fatalf("no field %q", label)
	return ""
}

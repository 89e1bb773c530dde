package issues

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/carebridge/carebridge/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	coord := coordinator.New(fx.Store(), testutil.Logger(), coordinator.Config{
		InFilterLimit: 30, VisibleIssueLimit: 50, ListLimit: 50,
	})
	return NewHandler(coord, testutil.Logger()), fx
}

func TestReport_CreatesIssue(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cit := fx.CreateProfile(ctx, "Cit", models.RoleCitizen)

	body := `{"title":"Broken pipe","description":"Leaking","category":"water","location":"5th and Main"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r = identity.WithActor(r, identity.Actor{ID: cit.ID, Role: cit.Role, DisplayName: cit.Name})
	rec := httptest.NewRecorder()

	h.Report(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != models.IssuePending || got.ReporterID != cit.ID {
		t.Errorf("unexpected issue: %+v", got)
	}
}

func TestReport_SanitizesMarkup(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cit := fx.CreateProfile(ctx, "Cit", models.RoleCitizen)

	body := `{"title":"<script>alert(1)</script>pipe","description":"d","category":"water","location":"l"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r = identity.WithActor(r, identity.Actor{ID: cit.ID, Role: cit.Role})
	rec := httptest.NewRecorder()

	h.Report(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var got models.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Contains(got.Title, "<script>") {
		t.Errorf("markup survived sanitization: %q", got.Title)
	}
}

func TestReport_ForbiddenRole(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rest := fx.CreateProfile(ctx, "Resto", models.RoleRestaurant)

	body := `{"title":"t","description":"d","category":"water","location":"l"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r = identity.WithActor(r, identity.Actor{ID: rest.ID, Role: rest.Role})
	rec := httptest.NewRecorder()

	h.Report(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestVisible_RequiresFocusAreas(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ngo := fx.CreateNGO(ctx, "Empty", nil)

	r := httptest.NewRequest(http.MethodGet, "/visible", nil)
	r = identity.WithActor(r, identity.Actor{ID: ngo.ID, Role: ngo.Role})
	rec := httptest.NewRecorder()

	h.Visible(rec, r)

	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("expected 412 for empty focus areas, got %d", rec.Code)
	}
}

func TestTransition_ViaURLParam(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cit := fx.CreateProfile(ctx, "Cit", models.RoleCitizen)
	iss := fx.CreateIssue(ctx, cit.ID, "water")
	ngo := fx.CreateNGO(ctx, "WaterWorks", []string{"water"})

	r := httptest.NewRequest(http.MethodPost, "/"+iss.ID+"/status", strings.NewReader(`{"status":"in-progress"}`))
	r = identity.WithActor(r, identity.Actor{ID: ngo.ID, Role: ngo.Role})
	r = testutil.WithChiURLParam(r, "id", iss.ID)
	rec := httptest.NewRecorder()

	h.Transition(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != models.IssueInProgress {
		t.Errorf("expected in-progress, got %q", got.Status)
	}
}

func TestRoutes_RejectAnonymous(t *testing.T) {
	h, _ := newTestHandler(t)

	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/visible")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", resp.StatusCode)
	}
}

package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/carebridge/carebridge/internal/testutil"
)

func newTestHandler(t *testing.T, secret string) (*Handler, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	coord := coordinator.New(fx.Store(), testutil.Logger(), coordinator.Config{
		InFilterLimit: 30, VisibleIssueLimit: 50, ListLimit: 50,
	})
	return NewHandler(coord, secret, testutil.Logger()), fx
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestConfirm_AppliesIncrement(t *testing.T) {
	h, fx := newTestHandler(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cit := fx.CreateProfile(ctx, "Cit", models.RoleCitizen)

	body := `{"actor_id":"` + cit.ID + `","amount":2500,"session_id":"sess-1"}`
	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Confirm(rec, r)
		if rec.Code != http.StatusOK {
			t.Fatalf("delivery %d: got %d: %s", i+1, rec.Code, rec.Body.String())
		}
	}

	var got models.ActorProfile
	if err := fx.Store().Get(ctx, models.ColProfiles, cit.ID, &got); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.TotalDonated != 2500 {
		t.Errorf("redelivery must count once, total = %d", got.TotalDonated)
	}
}

func TestConfirm_VerifiesSignature(t *testing.T) {
	const secret = "webhook-secret"
	h, fx := newTestHandler(t, secret)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cit := fx.CreateProfile(ctx, "Cit", models.RoleCitizen)
	body := []byte(`{"actor_id":"` + cit.ID + `","amount":100,"session_id":"sess-1"}`)

	// Missing signature.
	r := httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.Confirm(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("unsigned delivery: expected 403, got %d", rec.Code)
	}

	// Wrong signature.
	r = httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(string(body)))
	r.Header.Set(signatureHeader, sign("other-secret", body))
	rec = httptest.NewRecorder()
	h.Confirm(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("badly signed delivery: expected 403, got %d", rec.Code)
	}

	// Valid signature.
	r = httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(string(body)))
	r.Header.Set(signatureHeader, sign(secret, body))
	rec = httptest.NewRecorder()
	h.Confirm(rec, r)
	if rec.Code != http.StatusOK {
		t.Errorf("signed delivery: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestConfirm_RejectsBadPayload(t *testing.T) {
	h, _ := newTestHandler(t, "")

	r := httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Confirm(rec, r)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for junk body, got %d", rec.Code)
	}
}

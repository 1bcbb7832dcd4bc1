package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	applicationDomain "peerlend-backend/internal/domain/application"
	"peerlend-backend/internal/testutil/applicationmock"
	applicationUC "peerlend-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const testBorrowerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func doJSON(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSubmitApplication_Created(t *testing.T) {
	h := NewApplicationHandler(applicationUC.NewUsecase(&applicationmock.Store{}))
	e := newEcho()

	body := `{"borrower_id":"` + testBorrowerID + `","amount":1000,"interest_rate":0.12,"duration_months":12,"purpose":"inventory"}`
	c, rec := doJSON(e, http.MethodPost, "/applications", body)
	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var dto applicationUC.ApplicationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dto.ApplicationID) != 32 || dto.Status != "pending" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestSubmitApplication_BadJSON(t *testing.T) {
	h := NewApplicationHandler(applicationUC.NewUsecase(&applicationmock.Store{}))
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/applications", `{"amount": nope}`)
	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestSubmitApplication_ValidationErrors(t *testing.T) {
	h := NewApplicationHandler(applicationUC.NewUsecase(&applicationmock.Store{}))
	e := newEcho()

	body := `{"borrower_id":"NOTHEX","amount":10.123,"duration_months":0}`
	c, rec := doJSON(e, http.MethodPost, "/applications", body)
	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422; body %s", rec.Code, rec.Body.String())
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !containsFieldMsg(resp.Details, "BorrowerID", "hex") {
		t.Errorf("missing borrower_id error: %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "Amount", "decimal") {
		t.Errorf("missing amount error: %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "DurationMonths", "required") {
		t.Errorf("missing duration error: %+v", resp.Details)
	}
}

func TestGetApplication_OK(t *testing.T) {
	const appID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	h := NewApplicationHandler(applicationUC.NewUsecase(&applicationmock.Store{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*applicationDomain.LoanApplication, error) {
			if id != appID {
				t.Fatalf("looked up %s", id)
			}
			return &applicationDomain.LoanApplication{
				ApplicationID: appID, BorrowerID: testBorrowerID,
				Amount: 1000, Status: applicationDomain.StatusPending,
				FundingProgress: 40, CreatedAt: time.Now().UTC(),
			}, nil
		},
	}))
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/applications/"+appID, "")
	c.SetParamNames("application_id")
	c.SetParamValues(appID)
	if err := h.GetApplication(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var dto applicationUC.ApplicationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.ApplicationID != appID || dto.FundingProgress != 40 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestGetApplication_NotFound(t *testing.T) {
	h := NewApplicationHandler(applicationUC.NewUsecase(&applicationmock.Store{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*applicationDomain.LoanApplication, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}))
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/applications/missing", "")
	c.SetParamNames("application_id")
	c.SetParamValues("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if err := h.GetApplication(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", rec.Code)
	}
}

func TestListOpenApplications_OK(t *testing.T) {
	h := NewApplicationHandler(applicationUC.NewUsecase(&applicationmock.Store{
		ListOpenFn: func(ctx context.Context, limit int) ([]*applicationDomain.LoanApplication, error) {
			if limit != 5 {
				t.Fatalf("limit = %d, want 5", limit)
			}
			return []*applicationDomain.LoanApplication{
				{ApplicationID: "11111111111111111111111111111111", Status: applicationDomain.StatusPending},
			}, nil
		},
	}))
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/applications?limit=5", "")
	if err := h.ListOpenApplications(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var resp struct {
		Applications []*applicationUC.ApplicationDTO `json:"applications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Applications) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Applications))
	}
}

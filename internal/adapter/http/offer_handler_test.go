package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	applicationDomain "peerlend-backend/internal/domain/application"
	"peerlend-backend/internal/domain/disbursement"
	offerDomain "peerlend-backend/internal/domain/offer"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/testutil/applicationmock"
	"peerlend-backend/internal/testutil/gatewaymock"
	"peerlend-backend/internal/testutil/offermock"
	"peerlend-backend/internal/testutil/uowmock"
	"peerlend-backend/internal/usecase/negotiation"

	"gorm.io/gorm"
)

const (
	testInvestorID = "cccccccccccccccccccccccccccccccc"
	testAppPubID   = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testOfferPubID = "dddddddddddddddddddddddddddddddd"
)

func openApplication() *applicationDomain.LoanApplication {
	return &applicationDomain.LoanApplication{
		ID:            1,
		ApplicationID: testAppPubID,
		BorrowerID:    testBorrowerID,
		Amount:        1000,
		Status:        applicationDomain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func pendingOffer() *offerDomain.LoanOffer {
	return &offerDomain.LoanOffer{
		ID:                1,
		OfferID:           testOfferPubID,
		LoanApplicationID: 1,
		InvestorID:        testInvestorID,
		OfferedAmount:     1000,
		State:             offerDomain.StatePending,
		CreatedAt:         time.Now().UTC(),
	}
}

// passthrough UoW running the callback against the given mock repos, no tx.
func passUoW(apps *applicationmock.Store, offers *offermock.Store, app *applicationDomain.LoanApplication) *uowmock.UoW {
	return &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Applications: apps, Offers: offers})
		},
		WithinApplicationTxFn: func(ctx context.Context, applicationID uint64, fn func(r uow.Repos, a *applicationDomain.LoanApplication) error) error {
			return fn(uow.Repos{Applications: apps, Offers: offers}, app)
		},
	}
}

func TestCreateOffer_Created(t *testing.T) {
	apps := &applicationmock.Store{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*applicationDomain.LoanApplication, error) {
			return openApplication(), nil
		},
	}
	offers := &offermock.Store{
		CreateFn: func(ctx context.Context, o *offerDomain.LoanOffer) error { return nil },
	}
	uc := negotiation.NewUsecase(apps, offers, uowmock.New(), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"investor_id":"` + testInvestorID + `","amount":500,"interest_rate":0.1}`
	c, rec := doJSON(e, http.MethodPost, "/applications/"+testAppPubID+"/offers", body)
	c.SetParamNames("application_id")
	c.SetParamValues(testAppPubID)
	if err := h.CreateOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var dto negotiation.OfferDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.State != "pending" || dto.ApplicationID != testAppPubID {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestCreateOffer_ApplicationFunded(t *testing.T) {
	apps := &applicationmock.Store{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*applicationDomain.LoanApplication, error) {
			a := openApplication()
			a.Status = applicationDomain.StatusFunded
			return a, nil
		},
	}
	uc := negotiation.NewUsecase(apps, &offermock.Store{}, uowmock.New(), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"investor_id":"` + testInvestorID + `","amount":500}`
	c, rec := doJSON(e, http.MethodPost, "/applications/"+testAppPubID+"/offers", body)
	c.SetParamNames("application_id")
	c.SetParamValues(testAppPubID)
	if err := h.CreateOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", rec.Code)
	}
}

func TestCreateOffer_ValidationErrors(t *testing.T) {
	uc := negotiation.NewUsecase(&applicationmock.Store{}, &offermock.Store{}, uowmock.New(), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"investor_id":"nope","amount":-5}`
	c, rec := doJSON(e, http.MethodPost, "/applications/"+testAppPubID+"/offers", body)
	c.SetParamNames("application_id")
	c.SetParamValues(testAppPubID)
	if err := h.CreateOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422; body %s", rec.Code, rec.Body.String())
	}
}

func TestAcceptOffer_OK(t *testing.T) {
	app := openApplication()
	offers := &offermock.Store{
		GetByOfferIDFn: func(ctx context.Context, id string) (*offerDomain.LoanOffer, error) {
			return pendingOffer(), nil
		},
		FindCommittedByApplicationFn: func(ctx context.Context, applicationID uint64) (*offerDomain.LoanOffer, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CompareAndTransitionFn: func(ctx context.Context, offerID string, expected, next offerDomain.State, patch offerDomain.Patch) (*offerDomain.LoanOffer, error) {
			o := pendingOffer()
			o.State = next
			o.PaymentMethod = *patch.PaymentMethod
			o.PaymentNumber = *patch.PaymentNumber
			return o, nil
		},
	}
	apps := &applicationmock.Store{}
	uc := negotiation.NewUsecase(apps, offers, passUoW(apps, offers, app), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"borrower_id":"` + testBorrowerID + `","payment_method":"bank_transfer","payment_number":"123456"}`
	c, rec := doJSON(e, http.MethodPost, "/offers/"+testOfferPubID+"/accept", body)
	c.SetParamNames("offer_id")
	c.SetParamValues(testOfferPubID)
	if err := h.AcceptOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var dto negotiation.OfferDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.State != "accepted" || dto.PaymentMethod != "bank_transfer" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestAcceptOffer_NotOwnerForbidden(t *testing.T) {
	app := openApplication()
	offers := &offermock.Store{
		GetByOfferIDFn: func(ctx context.Context, id string) (*offerDomain.LoanOffer, error) {
			return pendingOffer(), nil
		},
	}
	apps := &applicationmock.Store{}
	uc := negotiation.NewUsecase(apps, offers, passUoW(apps, offers, app), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"borrower_id":"` + testInvestorID + `","payment_method":"bank_transfer","payment_number":"123456"}`
	c, rec := doJSON(e, http.MethodPost, "/offers/"+testOfferPubID+"/accept", body)
	c.SetParamNames("offer_id")
	c.SetParamValues(testOfferPubID)
	if err := h.AcceptOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403; body %s", rec.Code, rec.Body.String())
	}
}

func TestRejectOffer_AcceptedConflicts(t *testing.T) {
	app := openApplication()
	offers := &offermock.Store{
		GetByOfferIDFn: func(ctx context.Context, id string) (*offerDomain.LoanOffer, error) {
			o := pendingOffer()
			o.State = offerDomain.StateAccepted
			return o, nil
		},
	}
	apps := &applicationmock.Store{
		GetByIDFn: func(ctx context.Context, id uint64) (*applicationDomain.LoanApplication, error) {
			return app, nil
		},
	}
	uc := negotiation.NewUsecase(apps, offers, passUoW(apps, offers, app), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"borrower_id":"` + testBorrowerID + `"}`
	c, rec := doJSON(e, http.MethodPost, "/offers/"+testOfferPubID+"/reject", body)
	c.SetParamNames("offer_id")
	c.SetParamValues(testOfferPubID)
	if err := h.RejectOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
}

func TestDisburseOffer_GatewayDown(t *testing.T) {
	accepted := pendingOffer()
	accepted.State = offerDomain.StateAccepted
	accepted.PaymentMethod = "bank_transfer"
	accepted.PaymentNumber = "123456"

	offers := &offermock.Store{
		GetByOfferIDFn: func(ctx context.Context, id string) (*offerDomain.LoanOffer, error) {
			return accepted, nil
		},
	}
	apps := &applicationmock.Store{
		GetByIDFn: func(ctx context.Context, id uint64) (*applicationDomain.LoanApplication, error) {
			return openApplication(), nil
		},
	}
	gw := &gatewaymock.Gateway{
		TransferFn: func(ctx context.Context, req disbursement.TransferRequest) error {
			return errors.New("rail unreachable")
		},
	}
	uc := negotiation.NewUsecase(apps, offers, uowmock.New(), gw, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	body := `{"investor_id":"` + testInvestorID + `"}`
	c, rec := doJSON(e, http.MethodPost, "/offers/"+testOfferPubID+"/disburse", body)
	c.SetParamNames("offer_id")
	c.SetParamValues(testOfferPubID)
	if err := h.DisburseOffer(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("code = %d, want 502; body %s", rec.Code, rec.Body.String())
	}
}

func TestListOffers_OK(t *testing.T) {
	apps := &applicationmock.Store{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*applicationDomain.LoanApplication, error) {
			return openApplication(), nil
		},
	}
	offers := &offermock.Store{
		ListByApplicationFn: func(ctx context.Context, applicationID uint64) ([]*offerDomain.LoanOffer, error) {
			rejected := pendingOffer()
			rejected.OfferID = "ffffffffffffffffffffffffffffffff"
			rejected.State = offerDomain.StateRejected
			return []*offerDomain.LoanOffer{pendingOffer(), rejected}, nil
		},
	}
	uc := negotiation.NewUsecase(apps, offers, uowmock.New(), &gatewaymock.Gateway{}, nil)
	h := NewOfferHandler(uc)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/applications/"+testAppPubID+"/offers", "")
	c.SetParamNames("application_id")
	c.SetParamValues(testAppPubID)
	if err := h.ListOffers(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var dto negotiation.OfferListDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dto.Pending) != 1 || len(dto.Rejected) != 1 {
		t.Fatalf("unexpected grouping: %+v", dto)
	}
}

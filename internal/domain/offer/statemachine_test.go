package offer

import (
	"errors"
	"testing"
)

func mkOffer(s State) *LoanOffer {
	o := &LoanOffer{OfferID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", State: s}
	if s == StateAccepted || s == StateDisbursed {
		o.PaymentMethod = "mpesa"
		o.PaymentNumber = "0700000000"
	}
	return o
}

var payout = Payload{PaymentMethod: "mpesa", PaymentNumber: "0700000000"}

func TestTransition_LegalPaths(t *testing.T) {
	tests := []struct {
		name string
		from State
		ev   Event
		role Role
		p    Payload
		want State
	}{
		{"pending accept", StatePending, EventAccept, RoleBorrower, payout, StateAccepted},
		{"pending reject", StatePending, EventReject, RoleBorrower, Payload{}, StateRejected},
		{"accepted disburse", StateAccepted, EventDisburse, RoleInvestor, Payload{}, StateDisbursed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(mkOffer(tt.from), tt.ev, tt.role, tt.p)
			if err != nil {
				t.Fatalf("Transition err: %v", err)
			}
			if got != tt.want {
				t.Fatalf("next = %s, want %s", got, tt.want)
			}
		})
	}
}

// Every (state, event) pair outside the transition table must fail with
// ErrInvalidTransition, regardless of role.
func TestTransition_CompletenessGrid(t *testing.T) {
	legal := map[State]map[Event]bool{
		StatePending:  {EventAccept: true, EventReject: true},
		StateAccepted: {EventDisburse: true},
	}
	states := []State{StatePending, StateAccepted, StateRejected, StateDisbursed}
	events := []Event{EventAccept, EventReject, EventDisburse}
	roles := []Role{RoleBorrower, RoleInvestor}

	for _, s := range states {
		for _, ev := range events {
			if legal[s][ev] {
				continue
			}
			for _, role := range roles {
				if _, err := Transition(mkOffer(s), ev, role, payout); !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("(%s, %s, %s): err = %v, want ErrInvalidTransition", s, ev, role, err)
				}
			}
		}
	}
}

func TestTransition_WrongRole(t *testing.T) {
	if _, err := Transition(mkOffer(StatePending), EventAccept, RoleInvestor, payout); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("investor accept: err = %v, want ErrUnauthorized", err)
	}
	if _, err := Transition(mkOffer(StatePending), EventReject, RoleInvestor, Payload{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("investor reject: err = %v, want ErrUnauthorized", err)
	}
	if _, err := Transition(mkOffer(StateAccepted), EventDisburse, RoleBorrower, Payload{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("borrower disburse: err = %v, want ErrUnauthorized", err)
	}
}

func TestTransition_AcceptRequiresPayoutDetails(t *testing.T) {
	for _, p := range []Payload{
		{},
		{PaymentMethod: "mpesa"},
		{PaymentNumber: "0700000000"},
	} {
		if _, err := Transition(mkOffer(StatePending), EventAccept, RoleBorrower, p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("payload %+v: err = %v, want ErrInvalidInput", p, err)
		}
	}
}

func TestTransition_DisburseRequiresStoredPayoutDetails(t *testing.T) {
	o := mkOffer(StateAccepted)
	o.PaymentNumber = ""
	if _, err := Transition(o, EventDisburse, RoleInvestor, Payload{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTransition_DoesNotMutate(t *testing.T) {
	o := mkOffer(StatePending)
	if _, err := Transition(o, EventAccept, RoleBorrower, payout); err != nil {
		t.Fatalf("Transition err: %v", err)
	}
	if o.State != StatePending || o.PaymentMethod != "" {
		t.Fatalf("offer mutated: %+v", o)
	}
}

package disbursement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "peerlend-backend/internal/domain/disbursement"
)

// HTTPGateway posts transfers to the external payment rail. The offer id rides
// along as Idempotency-Key, so resending the same transfer is harmless: the
// rail answers 409 for a duplicate it already processed, which we treat as
// success.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type transferReq struct {
	OfferID       string  `json:"offer_id"`
	PaymentMethod string  `json:"payment_method"`
	PaymentNumber string  `json:"payment_number"`
	Amount        float64 `json:"amount"`
}

func (g *HTTPGateway) Transfer(ctx context.Context, req domain.TransferRequest) error {
	payload, err := json.Marshal(transferReq{
		OfferID:       req.OfferID,
		PaymentMethod: req.PaymentMethod,
		PaymentNumber: req.PaymentNumber,
		Amount:        req.Amount,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transfers", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.OfferID)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// duplicate idempotency key: the rail already executed this transfer
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("payment rail returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
}

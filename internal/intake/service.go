// Package intake orchestrates the order pipeline: normalize, price, persist,
// render the receipt, and dispatch the confirmation message.
package intake

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/masrawy/order-intake/internal/invoice"
	"github.com/masrawy/order-intake/internal/order"
	"github.com/masrawy/order-intake/internal/session"
)

// PersistenceAPI is the slice of the business API the pipeline needs.
type PersistenceAPI interface {
	CreateOrder(ctx context.Context, o order.Order) (order.CreateOrderResult, error)
}

// Messenger dispatches a confirmation text from the business number to the
// customer number.
type Messenger interface {
	Send(ctx context.Context, body, from, to string) error
}

// API is the tool-facing surface of the pipeline.
type API interface {
	Validate(ctx context.Context, raw order.RawOrder, sess session.Session) (ValidateResult, error)
	Create(ctx context.Context, raw order.RawOrder, sess session.Session) (CreateResult, error)
}

// ValidateResult is returned to the caller so the customer can confirm what
// will be charged without a line-by-line price breakdown.
type ValidateResult struct {
	OrderLines []string        `json:"order_lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type CreateResult struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id,omitempty"`
}

type Service struct {
	api         PersistenceAPI
	sms         Messenger
	taxRate     decimal.Decimal
	defaultLang string
}

func NewService(api PersistenceAPI, sms Messenger, taxRate decimal.Decimal, defaultLang string) *Service {
	return &Service{api: api, sms: sms, taxRate: taxRate, defaultLang: defaultLang}
}

func (s *Service) locale(o order.Order) string {
	if o.LanguageCode != "" {
		return o.LanguageCode
	}
	return s.defaultLang
}

// Validate normalizes and prices an order and returns its preview rendering.
// It never touches the persistence API or the messaging gateway.
func (s *Service) Validate(ctx context.Context, raw order.RawOrder, sess session.Session) (ValidateResult, error) {
	o, err := order.Normalize(raw, sess)
	if err != nil {
		return ValidateResult{}, err
	}
	p, err := order.Price(o, s.taxRate)
	if err != nil {
		return ValidateResult{}, err
	}
	lines := invoice.Format(p, "", s.locale(o), invoice.ModePreview)
	return ValidateResult{OrderLines: lines, GrandTotal: p.GrandTotal}, nil
}

// Create runs the full pipeline. Exactly one persistence call is made; the
// confirmation SMS goes out at most once and only after the API accepted the
// order. A failed SMS does not fail the creation: the order already exists,
// so the failure is logged and the result stays success.
func (s *Service) Create(ctx context.Context, raw order.RawOrder, sess session.Session) (CreateResult, error) {
	o, err := order.Normalize(raw, sess)
	if err != nil {
		return CreateResult{}, err
	}
	p, err := order.Price(o, s.taxRate)
	if err != nil {
		return CreateResult{}, err
	}

	res, err := s.api.CreateOrder(ctx, o)
	if err != nil {
		return CreateResult{Status: "failure"}, err
	}
	if !res.Success() {
		return CreateResult{Status: "failure"}, &order.UpstreamError{
			Op:  "create_order",
			Err: errStatus(res.Status),
		}
	}

	orderID := res.ExternalOrderID.String()
	body := strings.Join(invoice.Format(p, orderID, s.locale(o), invoice.ModeReceipt), "\n")
	if err := s.sms.Send(ctx, body, o.BusinessPhone, o.CustomerPhone); err != nil {
		log.Printf("[intake] call=%s order=%s confirmation sms failed: %v", sess.CallSID, orderID, err)
	}

	return CreateResult{Status: "success", OrderID: orderID}, nil
}

type errStatus string

func (e errStatus) Error() string { return "api reported status " + string(e) }

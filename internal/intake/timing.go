package intake

import (
	"context"
	"log"
	"time"

	"github.com/masrawy/order-intake/internal/order"
	"github.com/masrawy/order-intake/internal/session"
)

// WithTiming wraps an API so each operation logs how long it took. It lives
// at the orchestration boundary; business logic stays free of instrumentation.
func WithTiming(next API) API { return &timedAPI{next: next} }

type timedAPI struct{ next API }

func (t *timedAPI) Validate(ctx context.Context, raw order.RawOrder, sess session.Session) (ValidateResult, error) {
	start := time.Now()
	res, err := t.next.Validate(ctx, raw, sess)
	log.Printf("[intake] call=%s validate_order executed in %s", sess.CallSID, time.Since(start))
	return res, err
}

func (t *timedAPI) Create(ctx context.Context, raw order.RawOrder, sess session.Session) (CreateResult, error) {
	start := time.Now()
	res, err := t.next.Create(ctx, raw, sess)
	log.Printf("[intake] call=%s create_order executed in %s", sess.CallSID, time.Since(start))
	return res, err
}

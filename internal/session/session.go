package session

import "context"

// Session is the identity context of one telephony call. The customer and
// business ids here are the only ones the pipeline trusts; anything a remote
// caller puts in an order payload is overwritten with these.
type Session struct {
	CallSID      string `json:"call_sid"`
	CustomerID   int    `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	BusinessID   int    `json:"business_id"`
	BusinessName string `json:"business_name"`
	Language     string `json:"language"`
}

// Resolver maps a call sid to its resolved identity.
type Resolver interface {
	Resolve(ctx context.Context, callSID string) (Session, error)
}

// StaticResolver hands out a fixed identity for every call. It stands in
// until the telephony provider exposes a real session lookup.
type StaticResolver struct {
	Session Session
}

func (r StaticResolver) Resolve(_ context.Context, callSID string) (Session, error) {
	s := r.Session
	s.CallSID = callSID
	return s, nil
}

// Package notify delivers confirmation messages through a Twilio-compatible
// SMS gateway.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway sends text messages via the provider's REST API.
type Gateway struct {
	HTTP       *http.Client
	BaseURL    string
	AccountSID string
	AuthToken  string
}

func NewGateway(baseURL, accountSID, authToken string) *Gateway {
	return &Gateway{
		HTTP:       &http.Client{Timeout: 5 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AccountSID: accountSID,
		AuthToken:  authToken,
	}
}

// Send posts one message from the business number to the customer number.
func (g *Gateway) Send(ctx context.Context, body, from, to string) error {
	form := url.Values{
		"Body": {body},
		"From": {from},
		"To":   {to},
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", g.BaseURL, g.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.SetBasicAuth(g.AccountSID, g.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := g.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sms: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("sms: gateway returned %s", res.Status)
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/masrawy/order-intake/internal/auth"
	"github.com/masrawy/order-intake/internal/intake"
	ord "github.com/masrawy/order-intake/internal/order"
	"github.com/masrawy/order-intake/internal/session"
)

//
// ---------- STUBS & FAKES ----------
//

// apiState records what the fake persistence API observed.
type apiState struct {
	orderCalls    int
	customerCalls int
	lastAuth      string
	lastOrder     ord.Order
	// status returned in the create_order body
	status string
}

// newAPIServer serves POST /api/restaurants/create_order and PUT /api/customers.
func newAPIServer(t *testing.T, status string) (*httptest.Server, *apiState) {
	t.Helper()
	state := &apiState{status: status}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/restaurants/create_order", func(w http.ResponseWriter, r *http.Request) {
		state.orderCalls++
		state.lastAuth = r.Header.Get("Authorization")
		var body struct {
			Order ord.Order `json:"order"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		state.lastOrder = body.Order
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":             state.status,
			"externals_order_id": 5512,
		})
	})

	mux.HandleFunc("/api/customers", func(w http.ResponseWriter, r *http.Request) {
		state.customerCalls++
		state.lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	return httptest.NewServer(mux), state
}

type stubMessenger struct {
	calls    int
	lastBody string
}

func (s *stubMessenger) Send(ctx context.Context, body, from, to string) error {
	s.calls++
	s.lastBody = body
	return nil
}

func testResolver() session.Resolver {
	return session.StaticResolver{Session: session.Session{
		CustomerID: 33, CustomerName: "Mamdouh",
		BusinessID: 97, BusinessName: "Kaware3",
		Language: "en",
	}}
}

func newRouter(svc intake.API, ext *ord.Ext) *gin.Engine {
	r := gin.New()
	t := r.Group("/tools")
	t.POST("/initiate_call", initiateCallHandler(testResolver()))
	t.POST("/validate_order", validateOrderHandler(svc, testResolver()))
	t.POST("/create_order", createOrderHandler(svc, testResolver()))
	t.PUT("/customers", updateCustomerHandler(ext))
	t.POST("/hangup_call", hangupCallHandler())
	return r
}

func newStack(t *testing.T, apiURL, secret string) (intake.API, *ord.Ext, *stubMessenger) {
	t.Helper()
	issuer := auth.NewIssuer(secret)
	ext := ord.NewExt(strings.TrimRight(apiURL, "/"), issuer)
	sms := &stubMessenger{}
	taxRate, _ := decimal.NewFromString("0.09")
	return intake.WithTiming(intake.NewService(ext, sms, taxRate, "en")), ext, sms
}

const orderBody = `{"order":{
  "language_code":"en",
  "business_phone":"+15550100",
  "customer_phone":"+15550123",
  "customer_id":1,
  "business_id":2,
  "items":[{
    "name":"Chicken Shawarma",
    "base_price":10.00,
    "quantity":2,
    "note":"no onions",
    "modifiers":[{"name":"Extra Garlic Sauce","price_delta":1.50,"quantity":2,"is_active":true}]
  }]
}}`

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

//
// ---------- TESTS ----------
//

func TestCreateOrder_HappyPath(t *testing.T) {
	t.Parallel()

	srv, state := newAPIServer(t, "success")
	defer srv.Close()
	svc, ext, sms := newStack(t, srv.URL, "test-secret")
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/create_order", orderBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var res intake.CreateResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if res.Status != "success" || res.OrderID != "5512" {
		t.Fatalf("result=%+v", res)
	}

	if state.orderCalls != 1 {
		t.Fatalf("persistencia llamada %d veces, esperaba 1", state.orderCalls)
	}
	if !strings.HasPrefix(state.lastAuth, "Bearer ") {
		t.Fatalf("Authorization=%q, esperaba bearer token", state.lastAuth)
	}
	// Identity comes from the session, never from the payload.
	if state.lastOrder.CustomerID != 33 || state.lastOrder.BusinessID != 97 {
		t.Fatalf("identidad=%d/%d, esperaba 33/97", state.lastOrder.CustomerID, state.lastOrder.BusinessID)
	}
	if sms.calls != 1 {
		t.Fatalf("sms enviado %d veces, esperaba 1", sms.calls)
	}
	if !strings.Contains(sms.lastBody, "Grand Total: $25.07") {
		t.Fatalf("cuerpo del sms:\n%s", sms.lastBody)
	}
}

func TestCreateOrder_PersistenceFailure(t *testing.T) {
	t.Parallel()

	srv, state := newAPIServer(t, "error")
	defer srv.Close()
	svc, ext, sms := newStack(t, srv.URL, "test-secret")
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/create_order", orderBody)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d body=%s (esperaba 502)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"failure"`) {
		t.Fatalf("body=%s, esperaba status failure", w.Body.String())
	}
	if state.orderCalls != 1 {
		t.Fatalf("persistencia llamada %d veces, esperaba 1", state.orderCalls)
	}
	if sms.calls != 0 {
		t.Fatalf("no debe enviarse sms tras un fallo de persistencia")
	}
}

func TestCreateOrder_MissingSecret_NoNetworkCall(t *testing.T) {
	t.Parallel()

	srv, state := newAPIServer(t, "success")
	defer srv.Close()
	svc, ext, sms := newStack(t, srv.URL, "") // signing secret unset
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/create_order", orderBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s (esperaba 500)", w.Code, w.Body.String())
	}
	if state.orderCalls != 0 {
		t.Fatalf("no debe intentarse llamada de red sin secreto de firma")
	}
	if sms.calls != 0 {
		t.Fatalf("no debe enviarse sms")
	}
}

func TestValidateOrder_NoUpstreamCalls(t *testing.T) {
	t.Parallel()

	srv, state := newAPIServer(t, "success")
	defer srv.Close()
	svc, ext, sms := newStack(t, srv.URL, "test-secret")
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/validate_order", orderBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var res intake.ValidateResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if !res.GrandTotal.Equal(decimal.RequireFromString("25.07")) {
		t.Fatalf("grand_total=%s, esperaba 25.07", res.GrandTotal)
	}
	if len(res.OrderLines) != 3 {
		t.Fatalf("order_lines=%v, esperaba 3 líneas", res.OrderLines)
	}
	if state.orderCalls != 0 || state.customerCalls != 0 || sms.calls != 0 {
		t.Fatalf("validate no debe tocar colaboradores: api=%d/%d sms=%d",
			state.orderCalls, state.customerCalls, sms.calls)
	}
}

func TestValidateOrder_MissingItemsKey(t *testing.T) {
	t.Parallel()

	srv, _ := newAPIServer(t, "success")
	defer srv.Close()
	svc, ext, _ := newStack(t, srv.URL, "test-secret")
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/validate_order", `{"order":{"language_code":"en"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
}

func TestValidateOrder_EmptyItems(t *testing.T) {
	t.Parallel()

	srv, _ := newAPIServer(t, "success")
	defer srv.Close()
	svc, ext, _ := newStack(t, srv.URL, "test-secret")
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/validate_order", `{"order":{"items":[]}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
}

func TestUpdateCustomer_PassThrough(t *testing.T) {
	t.Parallel()

	srv, state := newAPIServer(t, "success")
	defer srv.Close()
	_, ext, _ := newStack(t, srv.URL, "test-secret")
	r := newRouter(intake.NewService(ext, &stubMessenger{}, decimal.RequireFromString("0.09"), "en"), ext)

	body := `{"customer_id":33,"first_name":"Mamdouh","last_name":"Said","language":"ar"}`
	w := doJSON(r, http.MethodPut, "/tools/customers", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	// name update + language update
	if state.customerCalls != 2 {
		t.Fatalf("customer API llamada %d veces, esperaba 2", state.customerCalls)
	}
}

func TestInitiateCall_ReturnsSessionIdentity(t *testing.T) {
	t.Parallel()

	srv, _ := newAPIServer(t, "success")
	defer srv.Close()
	svc, ext, _ := newStack(t, srv.URL, "test-secret")
	r := newRouter(svc, ext)

	w := doJSON(r, http.MethodPost, "/tools/initiate_call", `{"call_sid":"CA42","business_phone":"+1","customer_phone":"+2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var sess session.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if sess.CallSID != "CA42" || sess.CustomerID != 33 || sess.BusinessID != 97 {
		t.Fatalf("session=%+v", sess)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masrawy/order-intake/internal/auth"
	"github.com/masrawy/order-intake/internal/httpx"
	"github.com/masrawy/order-intake/internal/intake"
	"github.com/masrawy/order-intake/internal/order"
	"github.com/masrawy/order-intake/internal/session"
)

// orderRequest wraps the order payload the way the tool transport sends it.
// swagger:model orderRequest
type orderRequest struct {
	Order order.RawOrder `json:"order"`
}

// updateCustomerRequest updates a customer's name and/or preferred language.
// swagger:model updateCustomerRequest
type updateCustomerRequest struct {
	CustomerID int    `json:"customer_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Language   string `json:"language"`
}

// customerAPI is the slice of the persistence client the customer
// pass-through needs.
type customerAPI interface {
	UpdateCustomer(ctx context.Context, customerID int, firstName, lastName string) error
	UpdateCustomerLanguage(ctx context.Context, customerID int, language string) error
}

func initiateCallHandler(sessions session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CallSID       string `json:"call_sid"`
			BusinessPhone string `json:"business_phone"`
			CustomerPhone string `json:"customer_phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		sid := req.CallSID
		if sid == "" {
			sid = httpx.CallSID(c)
		}
		sess, err := sessions.Resolve(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

func validateOrderHandler(svc intake.API, sessions session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		sess, err := sessions.Resolve(c.Request.Context(), httpx.CallSID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		res, err := svc.Validate(c.Request.Context(), req.Order, sess)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func createOrderHandler(svc intake.API, sessions session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		sess, err := sessions.Resolve(c.Request.Context(), httpx.CallSID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		res, err := svc.Create(c.Request.Context(), req.Order, sess)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func updateCustomerHandler(api customerAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.CustomerID == 0 || (req.Language == "" && req.FirstName == "" && req.LastName == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id and at least one field are required"})
			return
		}
		ctx := c.Request.Context()
		if req.FirstName != "" || req.LastName != "" {
			if err := api.UpdateCustomer(ctx, req.CustomerID, req.FirstName, req.LastName); err != nil {
				writeOrderError(c, err)
				return
			}
		}
		if req.Language != "" {
			if err := api.UpdateCustomerLanguage(ctx, req.CustomerID, req.Language); err != nil {
				writeOrderError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func hangupCallHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"response": "Call ended gracefully"})
	}
}

// writeOrderError maps pipeline errors onto HTTP statuses: caller mistakes
// are 400s, everything upstream or internal is a gateway failure the agent
// can relay as "creation failed".
func writeOrderError(c *gin.Context, err error) {
	var upstream *order.UpstreamError
	switch {
	case errors.Is(err, order.ErrMalformedOrder), errors.Is(err, order.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"status": "failure", "error": err.Error()})
	case errors.Is(err, auth.ErrMissingSecret), errors.Is(err, auth.ErrTokenIntegrity):
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failure", "error": err.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"status": "failure", "error": "order creation failed"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"status": "failure", "error": "order creation failed"})
	}
}

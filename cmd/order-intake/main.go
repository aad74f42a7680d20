package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masrawy/order-intake/internal/auth"
	"github.com/masrawy/order-intake/internal/config"
	"github.com/masrawy/order-intake/internal/httpx"
	"github.com/masrawy/order-intake/internal/intake"
	"github.com/masrawy/order-intake/internal/notify"
	"github.com/masrawy/order-intake/internal/order"
	"github.com/masrawy/order-intake/internal/session"
)

func main() {
	cfg := config.Load()

	issuer := auth.NewIssuer(cfg.JWTSecret)
	ext := order.NewExt(cfg.APIBaseURL, issuer)
	sms := notify.NewGateway(cfg.TwilioBaseURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	svc := intake.WithTiming(intake.NewService(ext, sms, cfg.TaxRate, cfg.DefaultLanguage))

	// TODO: replace with a lookup against the telephony provider once it
	// exposes session metadata.
	sessions := session.StaticResolver{Session: session.Session{
		CustomerID:   33,
		CustomerName: "Mamdouh",
		BusinessID:   97,
		BusinessName: "Kaware3",
		Language:     cfg.DefaultLanguage,
	}}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.CallID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t := r.Group("/tools")
	t.POST("/initiate_call", initiateCallHandler(sessions))
	t.POST("/validate_order", validateOrderHandler(svc, sessions))
	t.POST("/create_order", createOrderHandler(svc, sessions))
	t.PUT("/customers", updateCustomerHandler(ext))
	t.POST("/hangup_call", hangupCallHandler())

	log.Printf("order-intake listening on %s", cfg.ListenAddr)
	log.Fatal(r.Run(cfg.ListenAddr))
}

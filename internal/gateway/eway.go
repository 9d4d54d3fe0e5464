package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrSessionFailed = errors.New("payment session could not be established")
	ErrQueryFailed   = errors.New("transaction query failed")
)

// Customer identifies the payer; echoed back on transaction queries.
type Customer struct {
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	Street1    string `json:"Street1"`
	Street2    string `json:"Street2,omitempty"`
	City       string `json:"City"`
	State      string `json:"State"`
	PostalCode string `json:"PostalCode"`
	Country    string `json:"Country"`
	Email      string `json:"Email"`
	Phone      string `json:"Phone"`
	Mobile     string `json:"Mobile,omitempty"`
}

// Payment carries the invoice details for a session. TotalAmount is in the
// currency's lowest denomination (cents).
type Payment struct {
	TotalAmount        int64  `json:"TotalAmount"`
	InvoiceNumber      string `json:"InvoiceNumber"`
	InvoiceDescription string `json:"InvoiceDescription"`
	InvoiceReference   string `json:"InvoiceReference"`
	CurrencyCode       string `json:"CurrencyCode"`
}

// Session is the redirect handle handed back to the client for completing
// payment on the hosted page.
type Session struct {
	AccessCode  string `json:"AccessCode"`
	RedirectURL string `json:"SharedPaymentUrl"`
}

// Transaction is the gateway's verdict for a completed access code.
type Transaction struct {
	TransactionID     int64    `json:"TransactionID"`
	TransactionStatus bool     `json:"TransactionStatus"`
	AuthorisationCode string   `json:"AuthorisationCode"`
	ResponseCode      string   `json:"ResponseCode"`
	ResponseMessage   string   `json:"ResponseMessage"`
	InvoiceNumber     string   `json:"InvoiceNumber"`
	InvoiceReference  string   `json:"InvoiceReference"`
	TotalAmount       int64    `json:"TotalAmount"`
	Customer          Customer `json:"Customer"`
}

// PaymentGateway is the boundary to the external payment provider. Only the
// request/response contract matters here; provider internals are opaque.
type PaymentGateway interface {
	CreateSession(ctx context.Context, customer Customer, payment Payment) (*Session, error)
	QueryTransaction(ctx context.Context, accessCode string) (*Transaction, error)
}

type rapidGateway struct {
	client      *resty.Client
	redirectURL string
	cancelURL   string
}

// NewRapidGateway builds the eWAY-Rapid-style adapter from environment
// configuration (EWAY_API_KEY, EWAY_API_PASSWORD, EWAY_ENDPOINT,
// PAYMENT_URL).
func NewRapidGateway() PaymentGateway {
	endpoint := os.Getenv("EWAY_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://api.sandbox.ewaypayments.com"
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetBasicAuth(os.Getenv("EWAY_API_KEY"), os.Getenv("EWAY_API_PASSWORD")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)

	paymentURL := os.Getenv("PAYMENT_URL")
	return &rapidGateway{
		client:      client,
		redirectURL: paymentURL + "/#/thanks",
		cancelURL:   paymentURL + "/#/transactionfailed",
	}
}

type sessionRequest struct {
	Customer        Customer `json:"Customer"`
	Payment         Payment  `json:"Payment"`
	RedirectURL     string   `json:"RedirectUrl"`
	CancelURL       string   `json:"CancelUrl"`
	TransactionType string   `json:"TransactionType"`
}

type sessionResponse struct {
	AccessCode       string `json:"AccessCode"`
	SharedPaymentURL string `json:"SharedPaymentUrl"`
	Errors           string `json:"Errors"`
}

func (g *rapidGateway) CreateSession(ctx context.Context, customer Customer, payment Payment) (*Session, error) {
	var out sessionResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(sessionRequest{
			Customer:        customer,
			Payment:         payment,
			RedirectURL:     g.redirectURL,
			CancelURL:       g.cancelURL,
			TransactionType: "Purchase",
		}).
		SetResult(&out).
		Post("/AccessCodesShared")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrSessionFailed, resp.StatusCode())
	}
	if out.Errors != "" {
		return nil, fmt.Errorf("%w: %s", ErrSessionFailed, out.Errors)
	}
	if out.SharedPaymentURL == "" {
		return nil, fmt.Errorf("%w: missing redirect url", ErrSessionFailed)
	}

	return &Session{AccessCode: out.AccessCode, RedirectURL: out.SharedPaymentURL}, nil
}

type queryResponse struct {
	Transactions []Transaction `json:"Transactions"`
	Errors       string        `json:"Errors"`
}

func (g *rapidGateway) QueryTransaction(ctx context.Context, accessCode string) (*Transaction, error) {
	var out queryResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/AccessCode/" + accessCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrQueryFailed, resp.StatusCode())
	}
	if out.Errors != "" {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, out.Errors)
	}
	if len(out.Transactions) == 0 {
		return nil, fmt.Errorf("%w: no transaction for access code", ErrQueryFailed)
	}

	return &out.Transactions[0], nil
}

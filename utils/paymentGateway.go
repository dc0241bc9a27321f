package utils

import (
	"fmt"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// GatewayVerifyResponse represents the payment gateway's verification reply
type GatewayVerifyResponse struct {
	Status  string `json:"status"` // completed, failed
	Code    string `json:"code"`
	Message string `json:"message"`
}

// VerifyGatewayTransaction asks the payment gateway for the authoritative
// status of a transaction before the webhook handler applies it.
func VerifyGatewayTransaction(transactionCode string) (*GatewayVerifyResponse, error) {
	cfg := config.AppConfig

	client := resty.New()
	var result GatewayVerifyResponse

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+cfg.PaymentGatewayKey).
		SetQueryParam("transaction_code", transactionCode).
		SetResult(&result).
		Get(cfg.PaymentGatewayURL + "transactions/verify")
	if err != nil {
		return nil, fmt.Errorf("gateway verification request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gateway verification returned %d: %s", resp.StatusCode(), resp.String())
	}

	return &result, nil
}

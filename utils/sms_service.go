// utils/sms_service.go
package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SMSService sends verification codes through the bulk SMS gateway.
type SMSService struct {
	APIKey   string
	SenderID string
	APIPath  string
	Client   *http.Client
}

// SMSResponse represents the response from the SMS gateway
type SMSResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Cost      string `json:"cost"`
	} `json:"data"`
}

// NewSMSService creates a new SMS service instance
func NewSMSService() *SMSService {
	apiPath := os.Getenv("SMS_API_URL")
	if apiPath == "" {
		apiPath = "https://api.sms-gateway.ir/v1/verify/send"
	}
	return &SMSService{
		APIKey:   os.Getenv("SMS_API_KEY"),
		SenderID: os.Getenv("SMS_SENDER_ID"),
		APIPath:  apiPath,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendCode sends a verification code to phoneNumber via the gateway.
func (s *SMSService) SendCode(phoneNumber, code string) error {
	params := url.Values{}
	params.Set("apikey", s.APIKey)
	params.Set("senderid", s.SenderID)
	params.Set("destination", phoneNumber)
	params.Set("template", "verify")
	params.Set("token", code)

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequest("POST", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse response
	var smsResp SMSResponse
	if err := json.Unmarshal(body, &smsResp); err != nil {
		// If JSON parsing fails, check if it's a simple success response
		responseStr := strings.TrimSpace(string(body))
		if strings.Contains(strings.ToLower(responseStr), "success") ||
			strings.Contains(strings.ToLower(responseStr), "sent") {
			return nil
		}
		return fmt.Errorf("failed to parse SMS response: %w", err)
	}

	if smsResp.Status == "success" || smsResp.Status == "sent" {
		return nil
	}

	return fmt.Errorf("SMS sending failed: %s", smsResp.Message)
}

// SendOTPViaSMS sends a 6-digit verification code via SMS.
func SendOTPViaSMS(phone string, code string) error {
	smsService := NewSMSService()
	return smsService.SendCode(phone, code)
}

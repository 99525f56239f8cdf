// Package phone talks to the paired-device automation service: a single REST
// endpoint that runs a natural-language task (place a call, send an SMS, open
// an app) on the user's phone.
package phone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultModel is the model the automation backend drives the device with.
const DefaultModel = "google/gemini-3-flash"

// Client runs tasks on the paired device. A nil *Client disables phone
// features; callers must check Connected before use.
type Client struct {
	baseURL  string
	apiKey   string
	deviceID string
	http     *http.Client
}

// New creates a phone client. httpClient may be nil for a default with a
// sane timeout.
func New(baseURL, apiKey, deviceID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		deviceID: deviceID,
		http:     httpClient,
	}
}

// Connected reports whether phone automation is usable.
func (c *Client) Connected() bool {
	return c != nil && c.apiKey != "" && c.deviceID != ""
}

type taskRequest struct {
	Task     string `json:"task"`
	DeviceID string `json:"device_id"`
	Model    string `json:"llm_model"`
}

// RunTask executes one natural-language instruction on the device.
func (c *Client) RunTask(ctx context.Context, instruction string) error {
	if !c.Connected() {
		return fmt.Errorf("phone not connected")
	}

	body, err := json.Marshal(taskRequest{
		Task:     instruction,
		DeviceID: c.deviceID,
		Model:    DefaultModel,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tasks/run", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("phone task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("phone task: unexpected status %s", resp.Status)
	}
	return nil
}

// Call places a call to number.
func (c *Client) Call(ctx context.Context, number string) error {
	return c.RunTask(ctx, fmt.Sprintf("Call %s", number))
}

// SendSMS sends message to number.
func (c *Client) SendSMS(ctx context.Context, number, message string) error {
	return c.RunTask(ctx, fmt.Sprintf("Send SMS to %s: %s", number, message))
}

// Package loops implements a best-effort, one-way sync of client contact info
// to the Loops.so email-marketing API.
package loops

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mwarren/crmapi/pkg/config"
	"go.uber.org/zap"
)

const createContactPath = "/contacts/create"

type Client struct {
	httpClient *http.Client
	cfg        config.LoopsConfig
	logger     *zap.Logger
}

func NewClient(cfg config.LoopsConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// CreateContact pushes one contact to Loops.so. It returns true only when the
// remote service accepted the contact. Every failure mode - disabled
// integration, missing credential, transport error, timeout, non-2xx status -
// normalizes to false; this method never returns an error and never panics.
func (c *Client) CreateContact(ctx context.Context, email, firstName, lastName, userID string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic while syncing contact to Loops.so",
				zap.String("email", email), zap.Any("panic", r))
			ok = false
		}
	}()

	if !c.cfg.Enabled {
		c.logger.Debug("Loops.so integration is disabled, skipping contact creation",
			zap.String("email", email))
		return false
	}
	if c.cfg.APIKey == "" {
		c.logger.Warn("Loops.so API key is not configured, cannot create contact",
			zap.String("email", email))
		return false
	}

	body, err := json.Marshal(contactRequest{
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Source:     c.cfg.DefaultSource,
		Subscribed: true,
		UserID:     userID,
	})
	if err != nil {
		c.logger.Error("failed to encode Loops.so contact request",
			zap.String("email", email), zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+createContactPath, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build Loops.so request",
			zap.String("email", email), zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Info("creating contact in Loops.so", zap.String("email", email))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("HTTP error while creating contact in Loops.so",
			zap.String("email", email), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("failed to create contact in Loops.so",
			zap.String("email", email), zap.Int("status", resp.StatusCode))
		return false
	}

	// The response message is only used for logging; the boolean is the
	// contract signal.
	var contactResp contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&contactResp); err != nil {
		c.logger.Error("could not decode Loops.so response",
			zap.String("email", email), zap.Error(err))
		return false
	}

	c.logger.Info("created contact in Loops.so",
		zap.String("email", email), zap.String("message", contactResp.Message))
	return true
}

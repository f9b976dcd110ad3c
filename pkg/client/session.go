package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/robfig/cron/v3"
)

// loginRequest is the wire shape of the login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the service with the configured
// credentials. On success the session cookie is stored in the client's
// cookie jar and attached to every subsequent request.
func (c *Client) Login(ctx context.Context) error {
	if c.config.Username == "" {
		return &ConfigError{Field: "username", Message: "username is required for login"}
	}
	if c.config.Password == "" {
		return &ConfigError{Field: "password", Message: "password is required for login"}
	}

	body, err := json.Marshal(loginRequest{
		Username: c.config.Username,
		Password: c.config.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	if err := c.doJSON(ctx, "login", http.MethodPost, c.config.LoginPath, body, nil, nil); err != nil {
		return err
	}

	c.sessionMu.Lock()
	c.loggedIn = true
	c.sessionMu.Unlock()

	c.logger.Info("session established", "username", c.config.Username)
	return nil
}

// Logout ends the session on the service and clears the local cookie
// jar. The jar is cleared even if the remote call fails, so a
// half-dead session cannot linger locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, "logout", http.MethodPost, c.config.LogoutPath, nil, nil, nil)

	jar, jarErr := cookiejar.New(nil)
	if jarErr == nil {
		c.client.Jar = jar
	}

	c.sessionMu.Lock()
	c.loggedIn = false
	c.sessionMu.Unlock()

	if err != nil {
		return err
	}
	c.logger.Info("session ended")
	return nil
}

// Authenticated reports whether a login has succeeded and not been
// followed by a logout. It reflects local state only; the service may
// have expired the session server-side.
func (c *Client) Authenticated() bool {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	return c.loggedIn
}

// StartKeepAlive begins re-issuing the login on the configured cron
// schedule, keeping the session cookie fresh across long-lived
// processes. It is a no-op when no schedule is configured.
func (c *Client) StartKeepAlive(ctx context.Context) error {
	if c.config.KeepAliveSchedule == "" {
		c.logger.Debug("keep-alive schedule not configured, skipping")
		return nil
	}

	if _, err := cron.ParseStandard(c.config.KeepAliveSchedule); err != nil {
		return &ConfigError{
			Field:   "keep_alive_schedule",
			Message: fmt.Sprintf("invalid cron schedule %q: %v", c.config.KeepAliveSchedule, err),
		}
	}

	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	if c.keepAlive != nil {
		return fmt.Errorf("keep-alive already running")
	}

	c.keepAlive = cron.New()
	_, err := c.keepAlive.AddFunc(c.config.KeepAliveSchedule, func() {
		if err := c.Login(ctx); err != nil {
			c.logger.Warn("session keep-alive login failed", "error", err)
		}
	})
	if err != nil {
		c.keepAlive = nil
		return fmt.Errorf("failed to schedule keep-alive: %w", err)
	}

	c.keepAlive.Start()
	c.logger.Info("session keep-alive started", "schedule", c.config.KeepAliveSchedule)
	return nil
}

// StopKeepAlive stops the keep-alive scheduler if it is running and
// waits for any in-flight keep-alive login to finish.
func (c *Client) StopKeepAlive() {
	c.sessionMu.Lock()
	keepAlive := c.keepAlive
	c.keepAlive = nil
	c.sessionMu.Unlock()

	if keepAlive == nil {
		return
	}
	// Stop returns a context that completes when running jobs finish;
	// waiting outside the session lock lets those jobs log in.
	<-keepAlive.Stop().Done()
	c.logger.Debug("session keep-alive stopped")
}

package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/h2hsecure/tokenreport/internal/domain"
)

type UsersAPIAdapter struct {
	client    *resty.Client
	UsersPath string
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct{}

// Debugf implements resty.Logger.
func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

// Errorf implements resty.Logger.
func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

// Warnf implements resty.Logger.
func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Warn().Msgf(format, v...)
}

const redacted = "[REDACTED]"

// redactRequestLog strips credentials from resty's debug dump.
func redactRequestLog(rl *resty.RequestLog) error {
	for _, h := range []string{"Authorization", "Cookie"} {
		if rl.Header.Get(h) != "" {
			rl.Header.Set(h, redacted)
		}
	}
	return nil
}

// redactResponseLog drops the body: it carries every user's access token.
func redactResponseLog(rl *resty.ResponseLog) error {
	if rl.Header.Get("Set-Cookie") != "" {
		rl.Header.Set("Set-Cookie", redacted)
	}
	if rl.Body != "" {
		rl.Body = fmt.Sprintf("%s %d bytes", redacted, len(rl.Body))
	}
	return nil
}

// NewUsersAPIAdapter builds the client for config.BaseURL. httpClient may be
// nil; tests pass one so the transport can be intercepted.
func NewUsersAPIAdapter(config *domain.Config, httpClient *http.Client) domain.UsersAPI {
	var client *resty.Client
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	} else {
		client = resty.New()
	}

	client.
		SetBaseURL(config.BaseURL).
		SetLogger(restyLogger{}).
		SetDebug(config.DebugHTTP).
		OnRequestLog(redactRequestLog).
		OnResponseLog(redactResponseLog).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeaders(config.Headers)

	if config.Session.CookieValue != "" {
		client.SetCookie(&http.Cookie{
			Name:  config.Session.CookieName,
			Value: config.Session.CookieValue,
		})
	}
	if config.Session.BearerToken != "" {
		client.SetAuthToken(config.Session.BearerToken)
	}

	return &UsersAPIAdapter{
		client:    client,
		UsersPath: config.UsersPath,
	}
}

// FetchRaw implements domain.UsersAPI.
func (a *UsersAPIAdapter) FetchRaw(ctx context.Context) ([]byte, error) {
	res, err := a.client.R().
		SetContext(ctx).
		Get(a.UsersPath)
	if err != nil {
		return nil, fmt.Errorf("users request: %w", err)
	}

	log.Debug().
		Str("url", res.Request.URL).
		Int("status", res.StatusCode()).
		Msg("users response")

	if !res.IsSuccess() {
		return nil, fmt.Errorf("users request (%s): code: %d", res.Request.URL, res.StatusCode())
	}

	return res.Body(), nil
}

// FetchUsers implements domain.UsersSource.
func (a *UsersAPIAdapter) FetchUsers(ctx context.Context) (domain.UsersResponse, error) {
	body, err := a.FetchRaw(ctx)
	if err != nil {
		return domain.UsersResponse{}, err
	}

	return domain.DecodeUsers(body)
}

package calendly

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homeloans_backend/platform/config"
	"homeloans_backend/platform/logger"
)

const (
	defaultBaseURL = "https://api.calendly.com"
	requestTimeout = 10 * time.Second
)

// ErrNotConfigured is returned when the API key or user URI is missing.
var ErrNotConfigured = errors.New("calendly not configured")

type Service struct {
	apiKey  string
	userURI string
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewService(cfg config.CalendlyConfig, log *logger.Logger) *Service {
	return &Service{
		apiKey:  cfg.GetCalendlyAPIKey(),
		userURI: cfg.GetCalendlyUserURI(),
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// ListEventTypes fetches the user's event types.
func (s *Service) ListEventTypes(ctx context.Context) ([]EventType, error) {
	if s.apiKey == "" || s.userURI == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Add("user", s.userURI)
	reqURL := fmt.Sprintf("%s/event_types?%s", strings.TrimRight(s.baseURL, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("calendly", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		s.log.WithContext(ctx).UpstreamError("calendly", err)
		return nil, err
	}

	var payload eventTypesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.log.WithContext(ctx).UpstreamError("calendly", err)
		return nil, err
	}

	items := make([]EventType, 0, len(payload.Collection))
	for _, raw := range payload.Collection {
		description := raw.Description
		if description == nil {
			description = raw.DescriptionPlain
		}
		items = append(items, EventType{
			Name:          raw.Name,
			SchedulingURL: raw.SchedulingURL,
			Duration:      raw.Duration,
			Description:   description,
		})
	}
	return items, nil
}

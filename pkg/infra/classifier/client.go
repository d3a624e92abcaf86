package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/textsentry/textsentry/pkg/analysis"
	"github.com/textsentry/textsentry/pkg/infra/httpx"
)

const scorePath = "/v1/score"

var ErrClassifierCall = errors.New("classifier service call failed")

// Config holds the connection settings for the external base classifier.
// Thresholds map category names to the minimum score that flags them; a
// category without an entry falls back to the service's binary flag.
type Config struct {
	BaseURL    string             `mapstructure:"base_url"`
	Token      string             `mapstructure:"token"`
	Thresholds map[string]float64 `mapstructure:"thresholds"`
}

// DecodeConfig builds a Config from loosely typed settings.
func DecodeConfig(settings map[string]interface{}) (Config, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode classifier config: %w", err)
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("classifier base_url must be specified")
	}
	return cfg, nil
}

type scoreRequest struct {
	Input string `json:"input"`
}

type scoreResponse struct {
	Flagged        bool               `json:"flagged"`
	Categories     map[string]bool    `json:"categories"`
	CategoryScores map[string]float64 `json:"category_scores"`
}

// Client calls the pretrained sequence classifier over HTTP, guarded by a
// circuit breaker so a flapping backend degrades the pipeline instead of
// stalling it.
type Client struct {
	client         httpx.Client
	logger         *logrus.Logger
	circuitBreaker httpx.CircuitBreaker
	config         Config
}

func NewClient(
	client httpx.Client,
	logger *logrus.Logger,
	circuitBreaker httpx.CircuitBreaker,
	config Config,
) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		client:         client,
		logger:         logger,
		circuitBreaker: circuitBreaker,
		config:         config,
	}
}

// Score sends the text to the classifier and converts the per-category
// response into a BaseScore using the configured thresholds.
func (c *Client) Score(ctx context.Context, text string) (analysis.BaseScore, error) {
	var result analysis.BaseScore
	err := c.circuitBreaker.Execute(func() error {
		var execErr error
		result, execErr = c.executeScoreRequest(ctx, text)
		return execErr
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).Warn("base classifier call failed")
		}
		return analysis.BaseScore{}, err
	}
	return result, nil
}

// Available reports whether the breaker currently admits calls.
func (c *Client) Available() bool {
	return !c.circuitBreaker.Open()
}

func (c *Client) executeScoreRequest(ctx context.Context, text string) (analysis.BaseScore, error) {
	body, err := json.Marshal(scoreRequest{Input: text})
	if err != nil {
		return analysis.BaseScore{}, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.config.BaseURL+scorePath,
		bytes.NewReader(body),
	)
	if err != nil {
		return analysis.BaseScore{}, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return analysis.BaseScore{}, fmt.Errorf("failed to call classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode).Error("classifier returned non-200 status")
		return analysis.BaseScore{}, fmt.Errorf("%w: status %d", ErrClassifierCall, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return analysis.BaseScore{}, fmt.Errorf("classifier response read error: %w", err)
	}

	var scored scoreResponse
	if err := json.Unmarshal(payload, &scored); err != nil {
		return analysis.BaseScore{}, fmt.Errorf("failed to unmarshal classifier response: %w", err)
	}

	return c.toBaseScore(scored), nil
}

func (c *Client) toBaseScore(resp scoreResponse) analysis.BaseScore {
	var labels []string
	confidence := 0.0

	categories := make([]string, 0, len(resp.CategoryScores))
	for category := range resp.CategoryScores {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		score := resp.CategoryScores[category]
		if score > confidence {
			confidence = score
		}
		if threshold, ok := c.config.Thresholds[category]; ok {
			if score >= threshold {
				labels = append(labels, category)
			}
		} else if resp.Categories[category] {
			labels = append(labels, category)
		}
	}

	scores := resp.CategoryScores
	if scores == nil {
		scores = map[string]float64{}
	}

	return analysis.BaseScore{
		IsToxic:     len(labels) > 0,
		Confidence:  confidence,
		ToxicLabels: labels,
		Scores:      scores,
	}
}

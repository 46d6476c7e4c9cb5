package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type modelStatus struct {
	ID      string `json:"id"`
	InCache bool   `json:"in_cache"`
	Status  struct {
		Value    string `json:"value"`
		ExitCode *int   `json:"exit_code,omitempty"`
		Failed   *bool  `json:"failed,omitempty"`
	} `json:"status"`
}

type modelsResponse struct {
	Data []modelStatus `json:"data"`
}

type loadModelRequest struct {
	Model string `json:"model"`
}

type loadModelResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// modelLoadPoll is how often EnsureModel re-checks a loading model.
var modelLoadPoll = time.Second

// ModelLoaded reports whether the client's model is loaded in the server.
func (c *Client) ModelLoaded(ctx context.Context) (bool, error) {
	st, err := c.modelStatus(ctx)
	if err != nil {
		return false, err
	}
	return st != nil && st.InCache, nil
}

// EnsureModel asks a llama.cpp router to load the client's model and waits
// until it is in cache, the load fails or ctx ends.
func (c *Client) EnsureModel(ctx context.Context) error {
	if loaded, err := c.ModelLoaded(ctx); err == nil && loaded {
		return nil
	}

	var loadResp loadModelResponse
	if err := c.do(ctx, http.MethodPost, "/models/load", loadModelRequest{Model: c.Model}, &loadResp); err != nil {
		return fmt.Errorf("failed to load model %s: %w", c.Model, err)
	}
	if !loadResp.Success {
		return fmt.Errorf("model load failed: %s", loadResp.Error)
	}

	ticker := time.NewTicker(modelLoadPoll)
	defer ticker.Stop()
	for {
		st, err := c.modelStatus(ctx)
		if err == nil && st != nil {
			if st.InCache {
				return nil
			}
			if st.Status.Failed != nil && *st.Status.Failed {
				exitCode := 0
				if st.Status.ExitCode != nil {
					exitCode = *st.Status.ExitCode
				}
				return fmt.Errorf("model load failed with exit code %d", exitCode)
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("model %s did not load: %w", c.Model, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) modelStatus(ctx context.Context) (*modelStatus, error) {
	var resp modelsResponse
	if err := c.do(ctx, http.MethodGet, "/models", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to check model status: %w", err)
	}
	for i := range resp.Data {
		if resp.Data[i].ID == c.Model {
			return &resp.Data[i], nil
		}
	}
	return nil, nil
}

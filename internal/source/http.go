package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// getBody issues a JSON GET and returns the decoded (gunzipped) body.
// Transport failures and non-2xx statuses wrap models.ErrNetwork.
func getBody(ctx context.Context, httpClient *http.Client, log logger.Logger, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", models.ErrNetwork, err)
	}
	for key, values := range client.JSONHeaders() {
		req.Header[key] = values
	}

	log.Debug("Making request", logger.String("url", reqURL))

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	log.Debug("Response received", logger.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: received status code %d", models.ErrNetwork, resp.StatusCode)
	}

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", models.ErrNetwork, err)
	}
	return body, nil
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/domain"
)

// APIClient handles HTTP communication with a tierlist server
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching the server

type envelope struct {
	Success bool                     `json:"success"`
	Data    json.RawMessage          `json:"data"`
	Error   string                   `json:"error"`
	Errors  []domain.ValidationError `json:"errors"`
}

type authResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

// APIError is a non-2xx response. Errors holds the field failures of a 400.
type APIError struct {
	Status  int
	Message string
	Errors  domain.ValidationErrors
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Errors.Error())
	}
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

// Login authenticates an admin and keeps the access token for later calls.
func (c *APIClient) Login(displayName, password string) error {
	body := map[string]string{
		"displayName": displayName,
		"password":    password,
	}

	var result authResponse
	if err := c.do(http.MethodPost, "/auth/login", body, http.StatusOK, &result); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.token = result.AccessToken
	return nil
}

// CreateComposition posts a draft and returns the stored record.
func (c *APIClient) CreateComposition(draft *builder.Draft) (*domain.Composition, error) {
	var comp domain.Composition
	if err := c.do(http.MethodPost, "/comps", draft, http.StatusCreated, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}

// ReplaceComposition fully replaces the composition with id.
func (c *APIClient) ReplaceComposition(id string, draft *builder.Draft) (*domain.Composition, error) {
	var comp domain.Composition
	if err := c.do(http.MethodPut, "/comps/"+id, draft, http.StatusOK, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}

// HTTP helpers

func (c *APIClient) do(method, path string, body interface{}, want int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unreadable response"}
	}

	if resp.StatusCode != want {
		return &APIError{Status: resp.StatusCode, Message: env.Error, Errors: env.Errors}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

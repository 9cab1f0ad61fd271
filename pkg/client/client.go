package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/model/request"
	"todoapp/internal/core/model/response"
	"todoapp/pkg/config"
)

// APIError is a non-200 response decoded from the {message} envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client is the typed HTTP client for the todo API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo

	if err := c.do(ctx, http.MethodGet, config.APIBasePath, nil, &todos); err != nil {
		return nil, err
	}

	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, params request.CreateTodoRequest) (domain.Todo, error) {
	var todo domain.Todo

	if err := c.do(ctx, http.MethodPost, config.APIBasePath, params, &todo); err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	var updated domain.Todo

	path := config.APIBasePath + "/" + todo.ID

	if err := c.do(ctx, http.MethodPut, path, todo, &updated); err != nil {
		return domain.Todo{}, err
	}

	return updated, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, config.APIBasePath+"/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)

		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)

	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)

	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope response.ErrorResponse

		data, _ := io.ReadAll(resp.Body)

		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}

		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

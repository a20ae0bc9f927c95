package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/cliniclink/cliniclink/internal/client/models"
	"github.com/cliniclink/cliniclink/internal/client/tokenstore"
	"github.com/cliniclink/cliniclink/internal/common"
)

// HTTPClient is the concrete API implementation over net/http.
//
// The bearer token is read from the token store once and cached in memory;
// SetToken refreshes the cache after login/logout. On a 401 the client
// clears the token store, drops the cached token, and fires the registered
// unauthorized callback before returning common.ErrorUnauthorized.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   tokenstore.Store

	mu          sync.Mutex
	token       string
	tokenLoaded bool
	onUnauth    func()
}

// NewHTTPClient constructs a client for the given base URL (e.g.
// "http://localhost:8080/api"). The store supplies the persisted token and
// is cleared on authorization failures.
func NewHTTPClient(baseURL string, store tokenstore.Store) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
	}
}

// SetToken implements API.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenLoaded = true
}

// SetUnauthorizedCallback implements API.
func (c *HTTPClient) SetUnauthorizedCallback(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauth = fn
}

func (c *HTTPClient) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tokenLoaded {
		c.token = c.store.LoadToken()
		c.tokenLoaded = true
	}
	return c.token
}

func (c *HTTPClient) handleUnauthorized() {
	c.mu.Lock()
	c.token = ""
	c.tokenLoaded = true
	cb := c.onUnauth
	c.mu.Unlock()

	c.store.Clear()
	if cb != nil {
		cb()
	}
}

// do performs a JSON request. A nil body sends no payload; a nil out
// discards the response body. Status 204 is treated as an empty result.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// doUpload performs a multipart form request. Unlike do, it does not attach
// the JSON content-type header; error handling is identical.
func (c *HTTPClient) doUpload(ctx context.Context, path, fileField, filename string, content []byte, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Authorization") == "" {
		if tok := c.currentToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return common.ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		c.handleUnauthorized()
		return common.ErrorUnauthorized

	case resp.StatusCode == http.StatusNoContent:
		return nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil

	default:
		return c.translateError(resp)
	}
}

// translateError maps a non-2xx response into *Error. The backend's error
// shape is {"message": "...", "errors": {"field": ["msg", ...]}}; a missing
// message falls back to a generic string carrying the status code.
func (c *HTTPClient) translateError(resp *http.Response) error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	return &Error{
		Status:  resp.StatusCode,
		Message: payload.Message,
		Fields:  payload.Errors,
	}
}

// Login implements API.
func (c *HTTPClient) Login(ctx context.Context, login, password string) (*LoginOutcome, error) {
	body := map[string]string{"login": login, "password": password}

	var raw struct {
		MFARequired     bool         `json:"mfa_required"`
		MFAToken        string       `json:"mfa_token"`
		User            *models.User `json:"user"`
		Token           string       `json:"token"`
		AcceptedInvites []string     `json:"accepted_invites"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &raw); err != nil {
		return nil, err
	}

	if raw.MFARequired {
		return &LoginOutcome{Challenge: &MFAChallenge{MFAToken: raw.MFAToken}}, nil
	}
	return &LoginOutcome{Success: &LoginSuccess{
		User:            raw.User,
		Token:           raw.Token,
		AcceptedInvites: raw.AcceptedInvites,
	}}, nil
}

// VerifyMFA implements API. Challenge failures come back as distinct HTTP
// statuses and are mapped to the shared sentinels so callers can offer a
// retry on a mistyped code.
func (c *HTTPClient) VerifyMFA(ctx context.Context, mfaToken, code string) (*LoginSuccess, error) {
	body := map[string]string{"mfa_token": mfaToken, "code": code}

	success := &LoginSuccess{}
	if err := c.do(ctx, http.MethodPost, "/auth/mfa/verify", body, success); err != nil {
		if apiErr, ok := AsError(err); ok {
			switch apiErr.Status {
			case http.StatusBadRequest:
				return nil, common.ErrMFACodeInvalid
			case http.StatusGone:
				return nil, common.ErrMFACodeExpired
			case http.StatusTooManyRequests:
				return nil, common.ErrMFATooManyAttempts
			}
		}
		return nil, err
	}
	return success, nil
}

// Register implements API.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Me implements API.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var raw struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &raw); err != nil {
		return nil, err
	}
	return raw.User, nil
}

// Logout implements API. The bearer header comes from the explicit token
// so the revocation still authenticates after SetToken("") dropped the
// cached one; an empty token falls back to the cache.
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.send(req, nil)
}

// CompleteOnboarding implements API.
func (c *HTTPClient) CompleteOnboarding(ctx context.Context, payload map[string]any) (*models.User, error) {
	var raw struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/onboarding", payload, &raw); err != nil {
		return nil, err
	}
	return raw.User, nil
}

// UploadProfilePhoto implements API.
func (c *HTTPClient) UploadProfilePhoto(ctx context.Context, filename string, content []byte) (*models.User, error) {
	var raw struct {
		User *models.User `json:"user"`
	}
	if err := c.doUpload(ctx, "/auth/photo", "photo", filename, content, nil, &raw); err != nil {
		return nil, err
	}
	return raw.User, nil
}

// Ping implements API.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// RequestDocumentUpload implements API.
func (c *HTTPClient) RequestDocumentUpload(ctx context.Context, kind, filename string) (*PresignedUpload, error) {
	body := map[string]string{"kind": kind, "filename": filename}

	grant := &PresignedUpload{}
	if err := c.do(ctx, http.MethodPost, "/documents/presign", body, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// ConfirmDocumentUpload implements API.
func (c *HTTPClient) ConfirmDocumentUpload(ctx context.Context, key, kind string) error {
	body := map[string]string{"key": key, "kind": kind}
	return c.do(ctx, http.MethodPost, "/documents/confirm", body, nil)
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/models"
	"github.com/example/storefront/internal/utils"
)

const tokenRefreshLeeway = 30 * time.Second

// TokenRepository persists the catalog API token between restarts.
type TokenRepository interface {
	Load(ctx context.Context, key string) (*models.StoredToken, bool, error)
	Save(ctx context.Context, key, token string, expiresAt *time.Time) error
	Delete(ctx context.Context, key string) error
}

// Certificate is the catalog API's login response.
type Certificate struct {
	ID    int     `json:"id"`
	Email *string `json:"email,omitempty"`
	Token string  `json:"token"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}

// CatalogClientConfig configures a CatalogClient.
type CatalogClientConfig struct {
	BaseURL  string
	TokenKey string
	Timeout  time.Duration
}

// CatalogClient talks to the remote catalog API. Public endpoints need no
// token; authenticated ones send the token stored under TokenKey.
type CatalogClient struct {
	baseURL    string
	tokenKey   string
	httpClient *http.Client
	tokens     TokenRepository
	log        *zap.Logger

	mu          sync.RWMutex
	token       string
	tokenExpiry time.Time
}

// NewCatalogClient builds a CatalogClient.
func NewCatalogClient(cfg CatalogClientConfig, tokens TokenRepository, log *zap.Logger) *CatalogClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CatalogClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokenKey:   cfg.TokenKey,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log.Named("catalog-api"),
	}
}

// FetchCollections loads the collections with the given ids, each with its
// products, features, modifiers and variations.
func (c *CatalogClient) FetchCollections(ctx context.Context, ids []int) ([]catalog.Collection, error) {
	if len(ids) == 0 {
		return nil, errors.New("at least one collection id is required")
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	var collections []catalog.Collection
	err := c.do(ctx, requestOpts{
		Method: http.MethodGet,
		Path:   "/product/collection",
		Query:  map[string]string{"ids": strings.Join(parts, ",")},
	}, &collections)
	if err != nil {
		return nil, fmt.Errorf("fetch collections: %w", err)
	}
	return collections, nil
}

// FetchProducts lists every product. Requires a stored token.
func (c *CatalogClient) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, requestOpts{Method: http.MethodGet, Path: "/products", Auth: true}, &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

// Login exchanges a phone number for a token and stores it.
func (c *CatalogClient) Login(ctx context.Context, phone string) (*Certificate, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, errors.New("phone is required")
	}

	var cert Certificate
	err := c.do(ctx, requestOpts{
		Method: http.MethodGet,
		Path:   "/login",
		Query:  map[string]string{"phone": phone},
	}, &cert)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if cert.Token == "" {
		return nil, fmt.Errorf("login: %w: missing token", ErrDecode)
	}

	if err := c.SaveToken(ctx, cert.Token); err != nil {
		return nil, err
	}

	c.log.Info("logged in to catalog API", zap.Int("user_id", cert.ID))
	return &cert, nil
}

// SaveToken stores token as the current catalog API token.
func (c *CatalogClient) SaveToken(ctx context.Context, token string) error {
	var expiresAt *time.Time
	if exp, ok := utils.TokenExpiry(token); ok {
		expiresAt = &exp
	}

	if err := c.tokens.Save(ctx, c.tokenKey, token, expiresAt); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.tokenExpiry = time.Time{}
	if expiresAt != nil {
		c.tokenExpiry = *expiresAt
	}
	c.mu.Unlock()
	return nil
}

// Logout forgets the stored token.
func (c *CatalogClient) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()

	if err := c.tokens.Delete(ctx, c.tokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Token returns the current token, loading it from the store when it is
// not cached. Tokens about to expire count as missing.
func (c *CatalogClient) Token(ctx context.Context) (string, error) {
	if token, ok := c.cachedToken(); ok {
		return token, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check again in case another goroutine loaded it while we waited for the lock.
	if token := c.currentTokenLocked(); token != "" {
		return token, nil
	}

	stored, ok, err := c.tokens.Load(ctx, c.tokenKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if !ok {
		return "", ErrNotAuthenticated
	}

	c.token = stored.Token
	c.tokenExpiry = time.Time{}
	if stored.ExpiresAt != nil {
		c.tokenExpiry = *stored.ExpiresAt
	}

	if token := c.currentTokenLocked(); token != "" {
		return token, nil
	}
	return "", ErrNotAuthenticated
}

func (c *CatalogClient) cachedToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token := c.currentTokenLocked()
	return token, token != ""
}

func (c *CatalogClient) currentTokenLocked() string {
	if c.token == "" {
		return ""
	}
	if c.tokenExpiry.IsZero() {
		return c.token
	}
	if time.Now().Add(tokenRefreshLeeway).After(c.tokenExpiry) {
		return ""
	}
	return c.token
}

func (c *CatalogClient) dropToken(ctx context.Context) {
	if err := c.Logout(ctx); err != nil {
		c.log.Warn("failed to drop rejected token", zap.Error(err))
	}
}

type requestOpts struct {
	Method string
	Path   string
	Query  map[string]string
	Auth   bool
}

// do performs a catalog API request and decodes a 2xx body into out.
func (c *CatalogClient) do(ctx context.Context, opts requestOpts, out any) error {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(opts.Path, "/"))
	if err != nil {
		return fmt.Errorf("parse catalog API URL: %w", err)
	}
	if len(opts.Query) > 0 {
		values := u.Query()
		for k, v := range opts.Query {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if opts.Auth {
		token, err := c.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", token)
	}

	c.log.Debug("catalog API request", zap.String("method", opts.Method), zap.String("url", u.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("catalog API request failed",
			zap.String("method", opts.Method),
			zap.String("url", u.String()),
			zap.Int("status", resp.StatusCode),
		)
		if resp.StatusCode == http.StatusForbidden && opts.Auth {
			c.dropToken(ctx)
			return ErrNotAuthenticated
		}
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var payload apiErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &APIError{Status: status, Message: payload.Error}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}

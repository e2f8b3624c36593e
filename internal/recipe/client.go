package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeAPI = (*Client)(nil)

// ── Wire types ───────────────────────────────────────────────────

// envelope is the top-level response shape of every endpoint.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Results int    `json:"results"`
	Data    struct {
		Recipe  *wireRecipe  `json:"recipe"`
		Recipes []wireRecipe `json:"recipes"`
	} `json:"data"`
}

type wireRecipe struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Publisher   string           `json:"publisher"`
	SourceURL   string           `json:"source_url"`
	ImageURL    string           `json:"image_url"`
	Servings    int              `json:"servings"`
	CookingTime int              `json:"cooking_time"`
	Ingredients []wireIngredient `json:"ingredients"`
	Key         string           `json:"key"`
}

type wireIngredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// toDomain normalizes snake_case API fields into the Recipe shape.
func (w *wireRecipe) toDomain() *domain.Recipe {
	r := &domain.Recipe{
		ID:          w.ID,
		Title:       w.Title,
		Publisher:   w.Publisher,
		SourceURL:   w.SourceURL,
		Image:       w.ImageURL,
		Servings:    w.Servings,
		CookingTime: w.CookingTime,
		Key:         w.Key,
		Ingredients: make([]domain.Ingredient, 0, len(w.Ingredients)),
	}
	for _, ing := range w.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}
	return r
}

func (w *wireRecipe) toPreview() domain.Preview {
	return domain.Preview{
		ID:        w.ID,
		Title:     w.Title,
		Publisher: w.Publisher,
		Image:     w.ImageURL,
		Key:       w.Key,
	}
}

// wireUpload is the POST body. Every field is always sent, zero values
// included.
type wireUpload struct {
	Title       string           `json:"title"`
	SourceURL   string           `json:"source_url"`
	ImageURL    string           `json:"image_url"`
	Publisher   string           `json:"publisher"`
	CookingTime int              `json:"cooking_time"`
	Servings    int              `json:"servings"`
	Ingredients []wireIngredient `json:"ingredients"`
}

func fromUpload(u *domain.Upload) wireUpload {
	w := wireUpload{
		Title:       u.Title,
		Publisher:   u.Publisher,
		SourceURL:   u.SourceURL,
		ImageURL:    u.Image,
		Servings:    u.Servings,
		CookingTime: u.CookingTime,
		Ingredients: make([]wireIngredient, 0, len(u.Ingredients)),
	}
	for _, ing := range u.Ingredients {
		w.Ingredients = append(w.Ingredients, wireIngredient(ing))
	}
	return w
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithTimeout sets how long a single request may take before it fails
// with domain.ErrTimeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client talks to the hosted recipe API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates an API client.
//   - baseURL: the recipes collection, e.g. "https://forkify-api.herokuapp.com/api/v2/recipes/"
//   - apiKey:  the developer key; required for uploads, optional for reads
func NewClient(baseURL, apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: 10 * time.Second,
		http:    &http.Client{},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get fetches a single recipe by id.
func (c *Client) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	u, err := c.endpoint(id, nil)
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if env.Data.Recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	return env.Data.Recipe.toDomain(), nil
}

// Search returns previews for all recipes matching query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Preview, error) {
	u, err := c.endpoint("", url.Values{"search": {query}})
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Preview, 0, len(env.Data.Recipes))
	for i := range env.Data.Recipes {
		out = append(out, env.Data.Recipes[i].toPreview())
	}
	c.log.Debug("api: search %q returned %d recipes", query, len(out))
	return out, nil
}

// Upload creates a recipe and returns the server's copy, which carries the
// assigned id and key.
func (c *Client) Upload(ctx context.Context, upload *domain.Upload) (*domain.Recipe, error) {
	u, err := c.endpoint("", nil)
	if err != nil {
		return nil, err
	}

	body := fromUpload(upload)
	env, err := c.do(ctx, http.MethodPost, u, &body)
	if err != nil {
		return nil, err
	}
	if env.Data.Recipe == nil {
		return nil, fmt.Errorf("upload: %w: response carried no recipe", domain.ErrNetwork)
	}
	return env.Data.Recipe.toDomain(), nil
}

// endpoint builds {base}/{id}?{query}&key={key}.
func (c *Client) endpoint(id string, q url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("api: bad base url %q: %w", c.baseURL, err)
	}
	if id != "" {
		u = u.JoinPath(id)
	}
	if q == nil {
		q = url.Values{}
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// do performs one request raced against the client timeout and decodes
// the JSON envelope.
func (c *Client) do(ctx context.Context, method, target string, in any) (*envelope, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("api: marshal payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api: %s %s", method, redactKey(target))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classify(ctx, reqCtx, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &domain.APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("api: %w: decode response: %v", domain.ErrNetwork, decodeErr)
	}

	return &env, nil
}

// classify turns a transport failure into the error taxonomy. The caller's
// own cancellation is passed through untouched.
func (c *Client) classify(parent, reqCtx context.Context, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: request took too long, gave up after %s", domain.ErrTimeout, c.timeout)
	}
	return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
}

func redactKey(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "***")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

package golf

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
	"time"

	"github.com/maxmalik/FORE/metrics"
	"github.com/maxmalik/FORE/model"
)

const DefaultURL = "http://127.0.0.1:8000"

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Client talks to the FORE backend. Every call is bound to ctx.
type Client interface {
	SearchCourses(ctx context.Context, name string) ([]model.Course, error)
	PostRound(ctx context.Context, r *model.RoundPost) error
	GetRounds(ctx context.Context, ids []string, withCourse bool, order Order) ([]model.Round, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*model.User, error)
	Register(ctx context.Context, r *Registration) (*model.User, error)
	// UsernameTaken and EmailTaken report false when the backend can't be
	// reached, the backend makes the final call on register.
	UsernameTaken(ctx context.Context, username string) bool
	EmailTaken(ctx context.Context, email string) bool
	AutofillScores(ctx context.Context, partial map[int]model.PartialHole, targetTotal int) (model.Scorecard, error)
}

type Registration struct {
	Name                 string `json:"name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// APIError is returned when the backend answers with a non 2xx status.
// Detail is the backend's explanation, if it gave one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
}

// StatusOf returns the backend status carried by err, or 0 if err did not
// come from a backend response.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &client{
		url: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func NewForTest(url string) Client {
	return New(url, 5*time.Second)
}

func (c *client) SearchCourses(ctx context.Context, name string) ([]model.Course, error) {
	var parsed []course
	if err := c.do(ctx, "search_courses", http.MethodPost, "/courses/search", map[string]string{"name": name}, &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Course, 0, len(parsed))
	for _, p := range parsed {
		result = append(result, p.toCourse())
	}
	return result, nil
}

func (c *client) PostRound(ctx context.Context, r *model.RoundPost) error {
	if r == nil {
		return errors.New("no round to post")
	}
	return c.do(ctx, "post_round", http.MethodPost, "/rounds/", newRoundPost(r), nil)
}

func (c *client) GetRounds(ctx context.Context, ids []string, withCourse bool, order Order) ([]model.Round, error) {
	if len(ids) == 0 {
		return []model.Round{}, nil
	}
	if order == "" {
		order = OrderDesc
	}

	params := url.Values{}
	for _, id := range ids {
		params.Add("ids", id)
	}
	params.Set("retrieve_course_data", strconv.FormatBool(withCourse))
	params.Set("order", string(order))

	var parsed []round
	if err := c.do(ctx, "get_rounds", http.MethodGet, "/rounds/?"+params.Encode(), nil, &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Round, 0, len(parsed))
	for _, p := range parsed {
		result = append(result, p.toRound())
	}
	return result, nil
}

func (c *client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var parsed user
	err := c.do(ctx, "get_user", http.MethodGet, "/users/"+url.PathEscape(id), nil, &parsed)
	if err != nil {
		return nil, err
	}
	return parsed.toUser(), nil
}

func (c *client) Login(ctx context.Context, usernameOrEmail, password string) (*model.User, error) {
	req := map[string]string{
		"username_or_email": usernameOrEmail,
		"password":          password,
	}
	var parsed user
	if err := c.do(ctx, "login", http.MethodPost, "/users/login", req, &parsed); err != nil {
		return nil, err
	}
	return parsed.toUser(), nil
}

func (c *client) Register(ctx context.Context, r *Registration) (*model.User, error) {
	var parsed user
	if err := c.do(ctx, "register", http.MethodPost, "/users/register", r, &parsed); err != nil {
		return nil, err
	}
	return parsed.toUser(), nil
}

func (c *client) UsernameTaken(ctx context.Context, username string) bool {
	return c.taken(ctx, "username_taken", "/users/username-taken/"+url.PathEscape(username))
}

func (c *client) EmailTaken(ctx context.Context, email string) bool {
	return c.taken(ctx, "email_taken", "/users/email-taken/"+url.PathEscape(email))
}

func (c *client) taken(ctx context.Context, endpoint, path string) bool {
	err := c.do(ctx, endpoint, http.MethodGet, path, nil, nil)
	return StatusOf(err) != 0
}

func (c *client) AutofillScores(ctx context.Context, partial map[int]model.PartialHole, targetTotal int) (model.Scorecard, error) {
	var filled map[string]int
	if err := c.do(ctx, "autofill_scores", http.MethodPost, "/autofill-scores", newAutofillRequest(partial, targetTotal), &filled); err != nil {
		return nil, err
	}
	return model.Scorecard(filled), nil
}

// do sends a request to the backend and decodes the response into out, if
// out is not nil. Non 2xx responses become an *APIError.
func (c *client) do(ctx context.Context, endpoint, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reqBody)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()
	metrics.BackendRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from backend: %w", err)
	}
	return nil
}

// readDetail pulls the "detail" message out of an error response. Validation
// errors carry a list there instead of a string, those are ignored.
func readDetail(r io.Reader) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&parsed); err != nil || len(parsed.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(parsed.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

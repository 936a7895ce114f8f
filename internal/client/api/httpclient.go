package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// HTTPClient is the concrete REST implementation of Client.
//
// Every outbound request automatically carries the session's bearer token
// when one exists. A 401 on a request that carried a token reports back to
// the bound session (forced invalidation); a 401 on an unauthenticated
// request (login) maps to ErrInvalidCredentials instead.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session SessionBinding
}

// NewHTTPClient creates a client for the backend at baseURL.
// Bind must be called before authenticated requests are issued.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Bind attaches the session that supplies tokens and absorbs forced
// invalidation. Constructed separately to break the client/session cycle.
func (c *HTTPClient) Bind(s SessionBinding) {
	c.session = s
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one request and maps its outcome onto the package error
// taxonomy. On success the caller owns resp.Body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	tokenAttached := false
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			tokenAttached = true
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := c.checkStatus(resp, tokenAttached); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// checkStatus translates a non-2xx response into a sentinel or typed error.
// A rejected token additionally invalidates the bound session; this is the
// only path by which the transport mutates session state.
func (c *HTTPClient) checkStatus(resp *http.Response, tokenAttached bool) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if tokenAttached {
			if c.session != nil {
				c.session.Invalidate()
			}
			return ErrUnauthorized
		}
		return ErrInvalidCredentials
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		var ve ValidationError
		if err := json.NewDecoder(resp.Body).Decode(&ve); err != nil || len(ve.Fields) == 0 {
			return &ValidationError{Fields: map[string][]string{"message": {resp.Status}}}
		}
		return &ve
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrServer, resp.StatusCode)
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp.Body, out)
}

// sendJSON issues a request with a JSON body. out may be nil when the
// response body is irrelevant.
func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	resp, err := c.do(ctx, method, path, nil, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return decodeJSON(resp.Body, out)
}

func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := c.sendJSON(ctx, http.MethodPost, "/login", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := c.getJSON(ctx, "/user", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	var id models.Identity
	if err := c.sendJSON(ctx, http.MethodPut, "/profile", upd, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateDocument submits one multipart document-creation request: the
// shared metadata fields plus a single file part.
func (c *HTTPClient) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*models.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":                req.Title,
		"description":          req.Shared.Description,
		"document_category_id": strconv.FormatInt(req.Shared.CategoryID, 10),
		"department_id":        strconv.FormatInt(req.Shared.DepartmentID, 10),
		"access_level":         string(req.Shared.AccessLevel),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	part, err := mw.CreatePart(filePartHeader(req.File))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(req.File.Bytes); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/documents", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc models.Document
	if err := decodeJSON(resp.Body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func filePartHeader(f models.FilePayload) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	if f.MimeType != "" {
		h.Set("Content-Type", f.MimeType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}
	return h
}

func (c *HTTPClient) ListDocuments(ctx context.Context, q models.DocumentQuery) (*models.Page[models.Document], error) {
	query := url.Values{}
	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	set("search", q.Search)
	if q.CategoryID > 0 {
		query.Set("category_id", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.DepartmentID > 0 {
		query.Set("department_id", strconv.FormatInt(q.DepartmentID, 10))
	}
	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	set("sort_by", q.SortBy)
	set("sort_direction", q.SortDirection)
	if q.Page > 1 {
		query.Set("page", strconv.Itoa(q.Page))
	}

	var page models.Page[models.Document]
	if err := c.getJSON(ctx, "/documents", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	var doc models.Document
	if err := c.getJSON(ctx, "/documents/"+strconv.FormatInt(id, 10), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id int64, upd models.DocumentUpdate) (*models.Document, error) {
	var doc models.Document
	if err := c.sendJSON(ctx, http.MethodPut, "/documents/"+strconv.FormatInt(id, 10), upd, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, "/documents/"+strconv.FormatInt(id, 10), nil, nil)
}

// DownloadDocument streams the document body. The caller must close
// Download.Body.
func (c *HTTPClient) DownloadDocument(ctx context.Context, id int64) (*Download, error) {
	resp, err := c.do(ctx, http.MethodGet, "/documents/"+strconv.FormatInt(id, 10)+"/download", nil, nil, "")
	if err != nil {
		return nil, err
	}

	name := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}
	return &Download{FileName: name, Body: resp.Body}, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.getJSON(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, cat models.Category) (*models.Category, error) {
	var out models.Category
	if err := c.sendJSON(ctx, http.MethodPost, "/categories", cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, cat models.Category) (*models.Category, error) {
	var out models.Category
	if err := c.sendJSON(ctx, http.MethodPut, "/categories/"+strconv.FormatInt(cat.ID, 10), cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, "/categories/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	if err := c.getJSON(ctx, "/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListRoles(ctx context.Context) ([]models.RoleRef, error) {
	var out []models.RoleRef
	if err := c.getJSON(ctx, "/roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, page int) (*models.Page[models.User], error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	var out models.Page[models.User]
	if err := c.getJSON(ctx, "/users", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, u models.NewUser) error {
	return c.sendJSON(ctx, http.MethodPost, "/users", u, nil)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, u models.NewUser) error {
	return c.sendJSON(ctx, http.MethodPut, "/users/"+strconv.FormatInt(id, 10), u, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) ListActivity(ctx context.Context, page int) (*models.Page[models.ActivityLog], error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	var out models.Page[models.ActivityLog]
	if err := c.getJSON(ctx, "/activity-logs", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.getJSON(ctx, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// fakeSession is a SessionBinding stub recording invalidations.
type fakeSession struct {
	token       string
	invalidated int
}

func (s *fakeSession) Token() string { return s.token }
func (s *fakeSession) Invalidate()   { s.invalidated++; s.token = "" }

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *fakeSession) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 5*time.Second)
	sess := &fakeSession{}
	c.Bind(sess)
	t.Cleanup(func() { c.Close() })
	return c, sess
}

func TestLogin_SendsCredentialsWithoutToken(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "jane@example.com", in["email"])
		assert.Equal(t, "secret", in["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id": 42, "name": "Jane", "email": "jane@example.com",
				"roles": []map[string]any{{"id": 1, "name": "manager"}},
			},
			"access_token": "tok-abc",
		})
	}))

	res, err := c.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", res.AccessToken)
	assert.Equal(t, "manager", res.User.PrimaryRole())
	assert.Zero(t, sess.invalidated)
}

func TestLogin_BadCredentials(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, sess.invalidated, "a 401 without a token must not invalidate the session")
}

func TestBearerAttachedAndRejected(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	sess.token = "stale-token"

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, sess.invalidated, "a rejected token must force invalidation")
}

func TestForbiddenKeepsSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	sess.token = "valid"

	err := c.DeleteDocument(context.Background(), 9)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, sess.invalidated)
	assert.Equal(t, "valid", sess.token)
}

func TestNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	_, err := c.GetDocument(context.Background(), 123)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestValidationError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string][]string{
				"title": {"The title field is required."},
				"file":  {"The file may not be greater than 10240 kilobytes."},
			},
		})
	}))

	_, err := c.CreateDocument(context.Background(), CreateDocumentRequest{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Error(), "file:")
}

func TestServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Dashboard(context.Background())
	require.ErrorIs(t, err, ErrServer)
}

func TestTransportFailure(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	defer c.Close()

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateDocument_MultipartFields(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Annual Report", r.FormValue("title"))
		assert.Equal(t, "scans", r.FormValue("description"))
		assert.Equal(t, "7", r.FormValue("document_category_id"))
		assert.Equal(t, "2", r.FormValue("department_id"))
		assert.Equal(t, "department", r.FormValue("access_level"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("pdfdata"), data)

		json.NewEncoder(w).Encode(models.Document{ID: 11, Title: "Annual Report"})
	}))
	sess.token = "tok"

	doc, err := c.CreateDocument(context.Background(), CreateDocumentRequest{
		Title: "Annual Report",
		Shared: models.SharedMetadata{
			Description:  "scans",
			CategoryID:   7,
			DepartmentID: 2,
			AccessLevel:  models.AccessDepartment,
		},
		File: models.FilePayload{
			Name:     "report.pdf",
			MimeType: "application/pdf",
			Bytes:    []byte("pdfdata"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), doc.ID)
}

func TestListDocuments_QueryParams(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "budget", q.Get("search"))
		assert.Equal(t, "3", q.Get("category_id"))
		assert.Equal(t, "2024-01-01", q.Get("start_date"))
		assert.Equal(t, "title", q.Get("sort_by"))
		assert.Equal(t, "asc", q.Get("sort_direction"))
		assert.Equal(t, "2", q.Get("page"))
		assert.False(t, q.Has("department_id"), "zero filters are omitted")

		json.NewEncoder(w).Encode(models.Page[models.Document]{
			Data:        []models.Document{{ID: 1, Title: "Budget 2024"}},
			CurrentPage: 2, LastPage: 5, Total: 42, From: 11, To: 20,
		})
	}))

	page, err := c.ListDocuments(context.Background(), models.DocumentQuery{
		Search:        "budget",
		CategoryID:    3,
		StartDate:     "2024-01-01",
		SortBy:        "title",
		SortDirection: "asc",
		Page:          2,
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 42, page.Total)
}

func TestDownloadDocument_FileName(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/5/download", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		w.Write([]byte("content"))
	}))

	dl, err := c.DownloadDocument(context.Background(), 5)
	require.NoError(t, err)
	defer dl.Body.Close()

	assert.Equal(t, "report.pdf", dl.FileName)
	data, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Fields: map[string][]string{
		"b": {"second"},
		"a": {"first", "also"},
	}}
	assert.Equal(t, "validation failed: a: first, also; b: second", ve.Error())

	empty := &ValidationError{}
	assert.Equal(t, "validation failed", empty.Error())

	var target *ValidationError
	assert.True(t, errors.As(error(ve), &target))
}

package api

import (
	"context"
	"io"

	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// LoginResult is the payload of a successful POST /login.
type LoginResult struct {
	User        *models.Identity `json:"user"`
	AccessToken string           `json:"access_token"`
}

// CreateDocumentRequest is one multipart document-creation call: the
// per-item title and file plus the batch-shared metadata.
type CreateDocumentRequest struct {
	Title  string
	Shared models.SharedMetadata
	File   models.FilePayload
}

// Download is a streamed document body. Callers must close Body.
type Download struct {
	FileName string
	Body     io.ReadCloser
}

// Client is the transport-agnostic contract for the document portal REST
// backend. Authorization failures, validation failures, and transport
// failures surface as the package sentinel errors and *ValidationError.
type Client interface {
	Close() error

	// Auth.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.Identity, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error)

	// Documents.
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*models.Document, error)
	ListDocuments(ctx context.Context, q models.DocumentQuery) (*models.Page[models.Document], error)
	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	UpdateDocument(ctx context.Context, id int64, upd models.DocumentUpdate) (*models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	DownloadDocument(ctx context.Context, id int64) (*Download, error)

	// Reference data.
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListRoles(ctx context.Context) ([]models.RoleRef, error)

	// Administration.
	ListUsers(ctx context.Context, page int) (*models.Page[models.User], error)
	CreateUser(ctx context.Context, u models.NewUser) error
	UpdateUser(ctx context.Context, id int64, u models.NewUser) error
	DeleteUser(ctx context.Context, id int64) error
	ListActivity(ctx context.Context, page int) (*models.Page[models.ActivityLog], error)

	// Dashboard.
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// SessionBinding supplies the bearer token attached to outbound requests
// and receives notice when the server rejects it. The session manager is
// the only implementation; the callback is the single cross-component
// mutation path into it.
type SessionBinding interface {
	// Token returns the current bearer token, or "" when no session exists.
	Token() string

	// Invalidate is called when a request that carried a token received
	// an authorization failure.
	Invalidate()
}

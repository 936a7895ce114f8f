package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// fakeClient implements api.Client with overridable hooks. Tests set only
// the functions they exercise; unconfigured calls panic to surface
// unexpected network activity.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	loginFn          func(ctx context.Context, email, password string) (*api.LoginResult, error)
	logoutFn         func(ctx context.Context) error
	currentUserFn    func(ctx context.Context) (*models.Identity, error)
	createDocumentFn func(ctx context.Context, req api.CreateDocumentRequest) (*models.Document, error)
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	f.record("Login")
	return f.loginFn(ctx, email, password)
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.record("Logout")
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.Identity, error) {
	f.record("CurrentUser")
	return f.currentUserFn(ctx)
}

func (f *fakeClient) CreateDocument(ctx context.Context, req api.CreateDocumentRequest) (*models.Document, error) {
	f.record("CreateDocument")
	return f.createDocumentFn(ctx, req)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	panic("unexpected UpdateProfile")
}
func (f *fakeClient) ListDocuments(ctx context.Context, q models.DocumentQuery) (*models.Page[models.Document], error) {
	panic("unexpected ListDocuments")
}
func (f *fakeClient) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	panic("unexpected GetDocument")
}
func (f *fakeClient) UpdateDocument(ctx context.Context, id int64, upd models.DocumentUpdate) (*models.Document, error) {
	panic("unexpected UpdateDocument")
}
func (f *fakeClient) DeleteDocument(ctx context.Context, id int64) error {
	panic("unexpected DeleteDocument")
}
func (f *fakeClient) DownloadDocument(ctx context.Context, id int64) (*api.Download, error) {
	panic("unexpected DownloadDocument")
}
func (f *fakeClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	panic("unexpected ListCategories")
}
func (f *fakeClient) CreateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	panic("unexpected CreateCategory")
}
func (f *fakeClient) UpdateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	panic("unexpected UpdateCategory")
}
func (f *fakeClient) DeleteCategory(ctx context.Context, id int64) error {
	panic("unexpected DeleteCategory")
}
func (f *fakeClient) ListDepartments(ctx context.Context) ([]models.Department, error) {
	panic("unexpected ListDepartments")
}
func (f *fakeClient) ListRoles(ctx context.Context) ([]models.RoleRef, error) {
	panic("unexpected ListRoles")
}
func (f *fakeClient) ListUsers(ctx context.Context, page int) (*models.Page[models.User], error) {
	panic("unexpected ListUsers")
}
func (f *fakeClient) CreateUser(ctx context.Context, u models.NewUser) error {
	panic("unexpected CreateUser")
}
func (f *fakeClient) UpdateUser(ctx context.Context, id int64, u models.NewUser) error {
	panic("unexpected UpdateUser")
}
func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	panic("unexpected DeleteUser")
}
func (f *fakeClient) ListActivity(ctx context.Context, page int) (*models.Page[models.ActivityLog], error) {
	panic("unexpected ListActivity")
}
func (f *fakeClient) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	panic("unexpected Dashboard")
}

// memStore is an in-memory metadata.Repository.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte

	setErr    error
	deleteErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

func (s *memStore) get(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func identityWithRole(role string) *models.Identity {
	return &models.Identity{
		ID:    42,
		Name:  "Jane Tester",
		Email: "jane@example.com",
		Roles: []models.RoleRef{{ID: 1, Name: role}},
	}
}

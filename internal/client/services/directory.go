package services

import (
	"context"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/authz"
	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// DirectoryService groups the remaining pass-throughs: reference data,
// category and user administration, the audit log, and the dashboard.
// Admin operations carry advisory pre-flight capability checks.
type DirectoryService struct {
	client   api.Client
	sessions *SessionManager
}

func NewDirectoryService(client api.Client, sessions *SessionManager) *DirectoryService {
	return &DirectoryService{client: client, sessions: sessions}
}

func (s *DirectoryService) require(c authz.Capability) error {
	if !authz.CapabilitiesFor(s.sessions.Identity()).Has(c) {
		return ErrCapabilityDenied
	}
	return nil
}

func (s *DirectoryService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.client.ListCategories(ctx)
}

func (s *DirectoryService) CreateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	if err := s.require(authz.ManageCategories); err != nil {
		return nil, err
	}
	return s.client.CreateCategory(ctx, c)
}

func (s *DirectoryService) UpdateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	if err := s.require(authz.ManageCategories); err != nil {
		return nil, err
	}
	return s.client.UpdateCategory(ctx, c)
}

func (s *DirectoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.require(authz.ManageCategories); err != nil {
		return err
	}
	return s.client.DeleteCategory(ctx, id)
}

func (s *DirectoryService) Departments(ctx context.Context) ([]models.Department, error) {
	return s.client.ListDepartments(ctx)
}

func (s *DirectoryService) Roles(ctx context.Context) ([]models.RoleRef, error) {
	return s.client.ListRoles(ctx)
}

func (s *DirectoryService) Users(ctx context.Context, page int) (*models.Page[models.User], error) {
	if err := s.require(authz.ManageUsers); err != nil {
		return nil, err
	}
	return s.client.ListUsers(ctx, page)
}

func (s *DirectoryService) CreateUser(ctx context.Context, u models.NewUser) error {
	if err := s.require(authz.ManageUsers); err != nil {
		return err
	}
	return s.client.CreateUser(ctx, u)
}

func (s *DirectoryService) UpdateUser(ctx context.Context, id int64, u models.NewUser) error {
	if err := s.require(authz.ManageUsers); err != nil {
		return err
	}
	return s.client.UpdateUser(ctx, id, u)
}

func (s *DirectoryService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.require(authz.ManageUsers); err != nil {
		return err
	}
	return s.client.DeleteUser(ctx, id)
}

func (s *DirectoryService) Activity(ctx context.Context, page int) (*models.Page[models.ActivityLog], error) {
	if err := s.require(authz.ViewAuditLog); err != nil {
		return nil, err
	}
	return s.client.ListActivity(ctx, page)
}

func (s *DirectoryService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return s.client.Dashboard(ctx)
}

// UpdateProfile updates the current user's profile and refreshes the
// session's identity snapshot with the server's response.
func (s *DirectoryService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	identity, err := s.client.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	s.sessions.RefreshIdentity(identity)
	return identity, nil
}

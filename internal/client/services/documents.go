package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/authz"
	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// DocumentService is a thin pass-through over the document endpoints:
// browse parameters in, rendered rows out. The edit/delete operations
// carry an advisory capability check; the server remains the enforcement
// point.
type DocumentService struct {
	client   api.Client
	sessions *SessionManager
}

func NewDocumentService(client api.Client, sessions *SessionManager) *DocumentService {
	return &DocumentService{client: client, sessions: sessions}
}

func (s *DocumentService) List(ctx context.Context, q models.DocumentQuery) (*models.Page[models.Document], error) {
	return s.client.ListDocuments(ctx, q)
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	return s.client.GetDocument(ctx, id)
}

// CanEdit reports whether the current session may edit doc (admin, or
// manager editing an own upload).
func (s *DocumentService) CanEdit(doc *models.Document) bool {
	return authz.CanEditDocument(s.sessions.Identity(), doc)
}

func (s *DocumentService) Update(ctx context.Context, doc *models.Document, upd models.DocumentUpdate) (*models.Document, error) {
	if !s.CanEdit(doc) {
		return nil, ErrCapabilityDenied
	}
	return s.client.UpdateDocument(ctx, doc.ID, upd)
}

func (s *DocumentService) Delete(ctx context.Context, doc *models.Document) error {
	if !s.CanEdit(doc) {
		return ErrCapabilityDenied
	}
	return s.client.DeleteDocument(ctx, doc.ID)
}

// Download streams the document body into dir (or the working directory
// when dir is empty) and returns the written path.
func (s *DocumentService) Download(ctx context.Context, id int64, dir string) (string, error) {
	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}

	dl, err := s.client.DownloadDocument(ctx, id)
	if err != nil {
		return "", err
	}
	defer dl.Body.Close()

	name := dl.FileName
	if name == "" {
		name = doc.FileName
	}
	path := filepath.Join(dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, dl.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

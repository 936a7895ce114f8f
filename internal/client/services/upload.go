package services

import (
	"context"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/authz"
	"github.com/dmitrijs2005/docuport/internal/client/models"
	"github.com/dmitrijs2005/docuport/internal/logging"
)

// EventKind distinguishes the progress events a running batch emits.
type EventKind string

const (
	EventItemStarted  EventKind = "item_started"
	EventItemFinished EventKind = "item_finished"
	EventBatchDone    EventKind = "batch_done"
)

// ProgressEvent is one step of a batch upload. Events arrive in item
// order, exactly one started and one finished event per item, terminated
// by a single batch_done event carrying the final result.
type ProgressEvent struct {
	Kind     EventKind
	Index    int // zero-based position within the batch
	FileName string
	Outcome  models.ItemOutcome
	Err      error
	Progress models.BatchProgress
	Result   *models.BatchResult // set on EventBatchDone only
}

// UploadService drives batch document uploads: an ordered list of files
// submitted as independent create-document requests sharing common
// metadata, with per-item failure isolation.
type UploadService struct {
	client   api.Client
	sessions *SessionManager
	log      logging.Logger
}

func NewUploadService(client api.Client, sessions *SessionManager, log logging.Logger) *UploadService {
	return &UploadService{client: client, sessions: sessions, log: log}
}

// Run starts the batch and returns its event stream, or ErrCapabilityDenied
// without any network activity when the caller lacks an authenticated
// session with the upload capability.
//
// Items are submitted strictly sequentially, in input order; one item's
// failure never aborts the rest and succeeded items are not rolled back.
// The channel is unbuffered and closes after the batch_done event; a batch
// runs to completion once started (no mid-batch cancellation).
func (s *UploadService) Run(ctx context.Context, batch *models.UploadBatch) (<-chan ProgressEvent, error) {
	sess := s.sessions.Current()
	if sess.Status != StatusAuthenticated {
		return nil, ErrCapabilityDenied
	}
	if !authz.CapabilitiesFor(sess.Identity).Has(authz.UploadDocuments) {
		return nil, ErrCapabilityDenied
	}

	batch.Status = models.BatchRunning
	events := make(chan ProgressEvent)
	go s.run(ctx, batch, events)
	return events, nil
}

func (s *UploadService) run(ctx context.Context, batch *models.UploadBatch, events chan<- ProgressEvent) {
	defer close(events)

	progress := models.BatchProgress{Total: len(batch.Items)}
	var lastErr error

	s.log.Info(ctx, "starting upload batch", "batch_id", batch.ID, "items", progress.Total)

	for i, item := range batch.Items {
		item.Outcome = models.ItemInFlight
		events <- ProgressEvent{
			Kind:     EventItemStarted,
			Index:    i,
			FileName: item.File.Name,
			Outcome:  item.Outcome,
			Progress: progress,
		}

		item.Title = batch.EffectiveTitle(i)
		_, err := s.client.CreateDocument(ctx, api.CreateDocumentRequest{
			Title:  item.Title,
			Shared: batch.Shared,
			File:   item.File,
		})

		if err != nil {
			item.Outcome = models.ItemFailed
			item.FailReason = err
			progress.Failed++
			lastErr = err
			s.log.Info(ctx, "upload failed", "batch_id", batch.ID, "file", item.File.Name, "error", err)
		} else {
			item.Outcome = models.ItemSucceeded
			progress.Succeeded++
		}
		progress.Completed++

		events <- ProgressEvent{
			Kind:     EventItemFinished,
			Index:    i,
			FileName: item.File.Name,
			Outcome:  item.Outcome,
			Err:      item.FailReason,
			Progress: progress,
		}
	}

	if progress.Failed == 0 {
		batch.Status = models.BatchCompleted
	} else {
		batch.Status = models.BatchCompletedWithFailures
	}
	result := &models.BatchResult{Status: batch.Status, Progress: progress, LastError: lastErr}

	s.log.Info(ctx, "upload batch finished", "batch_id", batch.ID,
		"succeeded", progress.Succeeded, "failed", progress.Failed)

	events <- ProgressEvent{Kind: EventBatchDone, Progress: progress, Result: result}
}

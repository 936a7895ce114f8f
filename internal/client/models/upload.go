package models

import "github.com/google/uuid"

// FilePayload is one file staged for upload: content plus the descriptive
// attributes sent alongside it.
type FilePayload struct {
	Name      string
	SizeBytes int64
	MimeType  string
	Bytes     []byte
}

// ItemOutcome is the per-item state within a batch. Terminal states are
// ItemSucceeded and ItemFailed; there is no re-entry without a fresh batch.
type ItemOutcome string

const (
	ItemPending   ItemOutcome = "pending"
	ItemInFlight  ItemOutcome = "in_flight"
	ItemSucceeded ItemOutcome = "succeeded"
	ItemFailed    ItemOutcome = "failed"
)

// UploadItem is one file within a batch together with its outcome.
// FailReason is set only when Outcome is ItemFailed.
type UploadItem struct {
	File       FilePayload
	Title      string
	Outcome    ItemOutcome
	FailReason error
}

// SharedMetadata is applied to every document created from a batch.
type SharedMetadata struct {
	Description  string
	CategoryID   int64
	DepartmentID int64
	AccessLevel  AccessLevel
}

// BatchStatus is the batch-level state machine:
// NotStarted -> Running -> {Completed | CompletedWithFailures}.
type BatchStatus string

const (
	BatchNotStarted            BatchStatus = "not_started"
	BatchRunning               BatchStatus = "running"
	BatchCompleted             BatchStatus = "completed"
	BatchCompletedWithFailures BatchStatus = "completed_with_failures"
)

// BatchProgress is an aggregate counter snapshot. Invariant:
// Completed = Succeeded + Failed <= Total, and Completed never decreases.
type BatchProgress struct {
	Total     int
	Completed int
	Succeeded int
	Failed    int
}

// UploadBatch is one user-initiated group of files submitted together with
// shared metadata. A batch is created per upload action and discarded once
// it completes; it is never persisted.
type UploadBatch struct {
	ID     string
	Shared SharedMetadata
	Title  string // explicit title, honored only for single-item batches
	Items  []*UploadItem
	Status BatchStatus
}

// NewUploadBatch stages the given files into a batch with all items Pending.
func NewUploadBatch(shared SharedMetadata, title string, files []FilePayload) *UploadBatch {
	items := make([]*UploadItem, 0, len(files))
	for _, f := range files {
		items = append(items, &UploadItem{File: f, Outcome: ItemPending})
	}
	return &UploadBatch{
		ID:     uuid.NewString(),
		Shared: shared,
		Title:  title,
		Items:  items,
		Status: BatchNotStarted,
	}
}

// EffectiveTitle resolves the title submitted for the item at index i:
// the explicit batch title when the batch holds exactly one item and a
// non-empty title was supplied, otherwise the item's own file name.
func (b *UploadBatch) EffectiveTitle(i int) string {
	if len(b.Items) == 1 && b.Title != "" {
		return b.Title
	}
	return b.Items[i].File.Name
}

// BatchResult is the terminal batch outcome. LastError retains the most
// recent item failure for display; succeeded items are never rolled back.
type BatchResult struct {
	Status    BatchStatus
	Progress  BatchProgress
	LastError error
}

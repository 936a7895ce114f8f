package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docuport/internal/client/models"
	"github.com/dmitrijs2005/docuport/internal/client/services"
)

// loadFile stages one local file for upload. The MIME type is derived
// from the extension, falling back to a generic binary type.
func loadFile(path string) (models.FilePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FilePayload{}, fmt.Errorf("reading %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return models.FilePayload{
		Name:      filepath.Base(path),
		SizeBytes: int64(len(data)),
		MimeType:  mimeType,
		Bytes:     data,
	}, nil
}

// Upload collects file paths and shared metadata interactively, then runs
// the batch and reports per-file progress as it happens.
func (a *App) Upload(ctx context.Context) error {
	pathsLine, err := getSimpleText(a.reader, "File paths (space separated)", os.Stdout)
	if err != nil {
		return err
	}
	paths := strings.Fields(pathsLine)
	if len(paths) == 0 {
		printlnFn("Nothing to upload.")
		return nil
	}

	files := make([]models.FilePayload, 0, len(paths))
	for _, p := range paths {
		f, err := loadFile(p)
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		files = append(files, f)
	}

	var title string
	if len(files) == 1 {
		title, err = GetTextDefault(a.reader, "Title", files[0].Name, os.Stdout)
		if err != nil {
			return err
		}
	} else {
		printlnFn(fmt.Sprintf("%d files selected, file names will be used as titles.", len(files)))
	}

	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	categoryID, err := GetInt64(a.reader, "Category id", 0, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	departmentID, err := GetInt64(a.reader, "Department id (0 for your own)", 0, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	access, err := GetTextDefault(a.reader, "Access level (public/department/private)",
		string(models.AccessDepartment), os.Stdout)
	if err != nil {
		return err
	}
	if !models.AccessLevel(access).Valid() {
		printlnFn("Unknown access level:", access)
		return fmt.Errorf("unknown access level %q", access)
	}

	batch := models.NewUploadBatch(models.SharedMetadata{
		Description:  description,
		CategoryID:   categoryID,
		DepartmentID: departmentID,
		AccessLevel:  models.AccessLevel(access),
	}, title, files)

	events, err := a.uploads.Run(ctx, batch)
	if err != nil {
		return reportErr(err)
	}

	for ev := range events {
		switch ev.Kind {
		case services.EventItemStarted:
			printlnFn(fmt.Sprintf("[%d/%d] uploading %s...",
				ev.Index+1, ev.Progress.Total, ev.FileName))
		case services.EventItemFinished:
			if ev.Outcome == models.ItemFailed {
				printlnFn(fmt.Sprintf("[%d/%d] %s failed: %s",
					ev.Index+1, ev.Progress.Total, ev.FileName, ev.Err.Error()))
			} else {
				printlnFn(fmt.Sprintf("[%d/%d] %s done",
					ev.Index+1, ev.Progress.Total, ev.FileName))
			}
		case services.EventBatchDone:
			printUploadResult(batch, ev.Result)
		}
	}
	return nil
}

// printUploadResult summarizes a finished batch, listing the failed items
// so the user can retry just those.
func printUploadResult(batch *models.UploadBatch, res *models.BatchResult) {
	if res.Status == models.BatchCompleted {
		printlnFn(fmt.Sprintf("All %d files uploaded.", res.Progress.Succeeded))
		return
	}

	printlnFn(fmt.Sprintf("%d of %d files uploaded, %d failed:",
		res.Progress.Succeeded, res.Progress.Total, res.Progress.Failed))
	for _, item := range batch.Items {
		if item.Outcome == models.ItemFailed {
			printlnFn(" ", item.File.Name+":", item.FailReason.Error())
		}
	}
}

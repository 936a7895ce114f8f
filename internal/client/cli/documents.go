package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docuport/internal/client/models"
	"github.com/dmitrijs2005/docuport/internal/filex"
)

// parseDocsQuery turns "key=value" command arguments into a browse query.
// Recognized keys: search, category, department, from, to, sort, dir,
// page. A bare word (no '=') is treated as a search term.
func parseDocsQuery(args []string) (models.DocumentQuery, error) {
	var q models.DocumentQuery

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if q.Search != "" {
				q.Search += " "
			}
			q.Search += arg
			continue
		}

		switch key {
		case "search":
			q.Search = value
		case "category":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return q, fmt.Errorf("invalid category %q", value)
			}
			q.CategoryID = id
		case "department":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return q, fmt.Errorf("invalid department %q", value)
			}
			q.DepartmentID = id
		case "from":
			q.StartDate = value
		case "to":
			q.EndDate = value
		case "sort":
			q.SortBy = value
		case "dir":
			if value != "asc" && value != "desc" {
				return q, fmt.Errorf("sort direction must be asc or desc, got %q", value)
			}
			q.SortDirection = value
		case "page":
			p, err := strconv.Atoi(value)
			if err != nil || p < 1 {
				return q, fmt.Errorf("invalid page %q", value)
			}
			q.Page = p
		default:
			return q, fmt.Errorf("unknown filter %q", key)
		}
	}
	return q, nil
}

// Docs lists documents matching the given filters.
//
// Usage: docs [search=text] [category=id] [department=id] [from=date]
// [to=date] [sort=field] [dir=asc|desc] [page=n]
func (a *App) Docs(ctx context.Context, args []string) error {
	q, err := parseDocsQuery(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	page, err := a.documents.List(ctx, q)
	if err != nil {
		return reportErr(err)
	}

	if len(page.Data) == 0 {
		printlnFn("No documents found.")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSIZE\tACCESS\tUPLOADED")
	for _, d := range page.Data {
		category := ""
		if d.Category != nil {
			category = d.Category.Title
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Title, category, formatSize(d.FileSize),
			d.AccessLevel, d.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	printlnFn(pageFooter(page))
	return nil
}

// Show displays one document's full metadata.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	d, err := a.documents.Get(ctx, id)
	if err != nil {
		return reportErr(err)
	}

	printlnFn("Title:      ", d.Title)
	if d.Description != "" {
		printlnFn("Description:", d.Description)
	}
	printlnFn("File:       ", d.FileName, "("+formatSize(d.FileSize)+")")
	if d.Category != nil {
		printlnFn("Category:   ", d.Category.Title)
	}
	if d.Department != nil {
		printlnFn("Department: ", d.Department.Name)
	}
	printlnFn("Access:     ", string(d.AccessLevel))
	if d.Uploader != nil {
		printlnFn("Uploaded by:", d.Uploader.Name)
	}
	printlnFn("Uploaded:   ", d.CreatedAt.Format("2006-01-02 15:04"))
	printlnFn("Downloads:  ", d.DownloadCount)
	if a.documents.CanEdit(d) {
		printlnFn("You can edit this document.")
	}
	return nil
}

// Download saves a document into the optional target directory
// (current directory by default).
func (a *App) Download(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	var dir string
	if len(args) > 1 {
		dir = args[1]
	} else {
		dir, err = filex.EnsureSubdDir("downloads")
		if err != nil {
			return reportErr(err)
		}
	}

	path, err := a.documents.Download(ctx, id, dir)
	if err != nil {
		return reportErr(err)
	}
	printlnFn("Saved to", path)
	return nil
}

// Edit updates a document's metadata interactively; empty answers keep
// the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	doc, err := a.documents.Get(ctx, id)
	if err != nil {
		return reportErr(err)
	}
	if !a.documents.CanEdit(doc) {
		printlnFn("You cannot edit this document.")
		return nil
	}

	title, err := GetTextDefault(a.reader, "Title", doc.Title, os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetTextDefault(a.reader, "Description", doc.Description, os.Stdout)
	if err != nil {
		return err
	}
	categoryID, err := GetInt64(a.reader, fmt.Sprintf("Category id [%d]", doc.CategoryID), doc.CategoryID, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	access, err := GetTextDefault(a.reader, "Access level (public/department/private)", string(doc.AccessLevel), os.Stdout)
	if err != nil {
		return err
	}
	if !models.AccessLevel(access).Valid() {
		printlnFn("Unknown access level:", access)
		return fmt.Errorf("unknown access level %q", access)
	}

	updated, err := a.documents.Update(ctx, doc, models.DocumentUpdate{
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		AccessLevel: models.AccessLevel(access),
	})
	if err != nil {
		return reportErr(err)
	}
	printlnFn("Updated", updated.Title)
	return nil
}

// Remove deletes a document after confirmation.
func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	doc, err := a.documents.Get(ctx, id)
	if err != nil {
		return reportErr(err)
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", doc.Title), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.documents.Delete(ctx, doc); err != nil {
		return reportErr(err)
	}
	printlnFn("Deleted.")
	return nil
}

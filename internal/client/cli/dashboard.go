package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// Dashboard prints the summary stats and the most recent documents.
func (a *App) Dashboard(ctx context.Context) error {
	stats, err := a.directory.Dashboard(ctx)
	if err != nil {
		return reportErr(err)
	}

	printlnFn("Accessible documents:", stats.Stats.TotalAccessible)
	printlnFn("My uploads:          ", stats.Stats.MyUploads)
	printlnFn("Department documents:", stats.Stats.DepartmentDocs)

	if len(stats.RecentActivity) > 0 {
		printlnFn("Recent:")
		w := newTable()
		for _, d := range stats.RecentActivity {
			fmt.Fprintf(w, "  %d\t%s\t%s\n", d.ID, d.Title, d.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()
	}
	return nil
}

// Profile shows the current account and optionally updates it. An empty
// password keeps the current one.
func (a *App) Profile(ctx context.Context) error {
	identity := a.sessions.Identity()
	if identity == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn("Name: ", identity.Name)
	printlnFn("Email:", identity.Email)

	ok, err := Confirm(a.reader, "Update profile?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	name, err := GetTextDefault(a.reader, "Name", identity.Name, os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetTextDefault(a.reader, "Email", identity.Email, os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "New password (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	upd := models.ProfileUpdate{Name: name, Email: email}
	if password != "" {
		confirmation, err := getSimpleText(a.reader, "Confirm new password", os.Stdout)
		if err != nil {
			return err
		}
		if confirmation != password {
			printlnFn("Passwords do not match.")
			return fmt.Errorf("password confirmation mismatch")
		}
		upd.Password = password
		upd.PasswordConfirmation = confirmation
	}

	updated, err := a.directory.UpdateProfile(ctx, upd)
	if err != nil {
		return reportErr(err)
	}
	printlnFn("Profile updated for", updated.Email)
	return nil
}

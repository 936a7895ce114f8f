package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docuport/internal/client/models"
)

// Categories lists document categories, or manages them:
//
//	categories            list
//	categories add        create (prompts for fields)
//	categories edit <id>  update
//	categories rm <id>    delete
func (a *App) Categories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cats, err := a.directory.Categories(ctx)
		if err != nil {
			return reportErr(err)
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
		for _, c := range cats {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Title, c.Description)
		}
		w.Flush()
		return nil
	}

	switch args[0] {
	case "add":
		title, err := getSimpleText(a.reader, "Title", os.Stdout)
		if err != nil {
			return err
		}
		description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
		if err != nil {
			return err
		}
		created, err := a.directory.CreateCategory(ctx, models.Category{Title: title, Description: description})
		if err != nil {
			return reportErr(err)
		}
		printlnFn("Created category", created.ID)
		return nil

	case "edit":
		id, err := parseID(args[1:])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		title, err := getSimpleText(a.reader, "Title", os.Stdout)
		if err != nil {
			return err
		}
		description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
		if err != nil {
			return err
		}
		if _, err := a.directory.UpdateCategory(ctx, models.Category{ID: id, Title: title, Description: description}); err != nil {
			return reportErr(err)
		}
		printlnFn("Updated.")
		return nil

	case "rm":
		id, err := parseID(args[1:])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		if err := a.directory.DeleteCategory(ctx, id); err != nil {
			return reportErr(err)
		}
		printlnFn("Deleted.")
		return nil
	}

	printlnFn("Usage: categories [add | edit <id> | rm <id>]")
	return nil
}

// Departments lists the departments reference data.
func (a *App) Departments(ctx context.Context) error {
	deps, err := a.directory.Departments(ctx)
	if err != nil {
		return reportErr(err)
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME")
	for _, d := range deps {
		fmt.Fprintf(w, "%d\t%s\n", d.ID, d.Name)
	}
	w.Flush()
	return nil
}

// Users lists or manages portal accounts:
//
//	users [page]       list
//	users add          create (prompts for fields)
//	users edit <id>    update
//	users rm <id>      delete
func (a *App) Users(ctx context.Context, args []string) error {
	if len(args) == 0 || isNumber(args[0]) {
		page := 1
		if len(args) > 0 {
			page, _ = strconv.Atoi(args[0])
		}
		res, err := a.directory.Users(ctx, page)
		if err != nil {
			return reportErr(err)
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tDEPARTMENT")
		for _, u := range res.Data {
			role := ""
			if len(u.Roles) > 0 {
				role = u.Roles[0].Name
			}
			department := ""
			if u.Department != nil {
				department = u.Department.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, role, department)
		}
		w.Flush()
		printlnFn(pageFooter(res))
		return nil
	}

	switch args[0] {
	case "add":
		u, err := a.promptUser(ctx)
		if err != nil {
			return err
		}
		if err := a.directory.CreateUser(ctx, u); err != nil {
			return reportErr(err)
		}
		printlnFn("User created.")
		return nil

	case "edit":
		id, err := parseID(args[1:])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		u, err := a.promptUser(ctx)
		if err != nil {
			return err
		}
		if err := a.directory.UpdateUser(ctx, id, u); err != nil {
			return reportErr(err)
		}
		printlnFn("User updated.")
		return nil

	case "rm":
		id, err := parseID(args[1:])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete user %d?", id), os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			printlnFn("Cancelled.")
			return nil
		}
		if err := a.directory.DeleteUser(ctx, id); err != nil {
			return reportErr(err)
		}
		printlnFn("User deleted.")
		return nil
	}

	printlnFn("Usage: users [page | add | edit <id> | rm <id>]")
	return nil
}

// promptUser collects the account fields. The role list comes from the
// backend so new server-side roles show up without a client change.
func (a *App) promptUser(ctx context.Context) (models.NewUser, error) {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return models.NewUser{}, err
	}
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return models.NewUser{}, err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return models.NewUser{}, err
	}

	rolePrompt := "Role"
	if roles, err := a.directory.Roles(ctx); err == nil && len(roles) > 0 {
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		rolePrompt = "Role (" + strings.Join(names, "/") + ")"
	}
	role, err := GetTextDefault(a.reader, rolePrompt, "user", os.Stdout)
	if err != nil {
		return models.NewUser{}, err
	}
	departmentID, err := GetInt64(a.reader, "Department id", 0, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return models.NewUser{}, err
	}
	return models.NewUser{
		Name:         name,
		Email:        email,
		Password:     string(password),
		Role:         role,
		DepartmentID: departmentID,
	}, nil
}

// Activity shows a page of the audit trail. Usage: activity [page]
func (a *App) Activity(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			printlnFn("Invalid page:", args[0])
			return fmt.Errorf("invalid page %q", args[0])
		}
		page = p
	}

	res, err := a.directory.Activity(ctx, page)
	if err != nil {
		return reportErr(err)
	}

	w := newTable()
	fmt.Fprintln(w, "WHEN\tUSER\tACTION\tDETAILS")
	for _, entry := range res.Data {
		user := ""
		if entry.User != nil {
			user = entry.User.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.CreatedAt.Format("2006-01-02 15:04"), user, entry.Action, entry.Details)
	}
	w.Flush()
	printlnFn(pageFooter(res))
	return nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

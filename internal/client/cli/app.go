package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/authz"
	"github.com/dmitrijs2005/docuport/internal/client/config"
	"github.com/dmitrijs2005/docuport/internal/client/services"
	"github.com/dmitrijs2005/docuport/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the interactive client: one session, one API client, and the
// services the REPL commands dispatch to.
type App struct {
	config    *config.Config
	log       logging.Logger
	client    api.Client
	sessions  *services.SessionManager
	uploads   *services.UploadService
	documents *services.DocumentService
	directory *services.DirectoryService
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewZerologLogger(os.Stderr, c.Verbose)

	store, err := api.InitDatabase(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "initializing local store", "error", err)
		return nil, err
	}

	httpClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	sessions := services.NewSessionManager(httpClient, store, log)
	httpClient.Bind(sessions)

	return &App{
		config:    c,
		log:       log,
		client:    httpClient,
		sessions:  sessions,
		uploads:   services.NewUploadService(httpClient, sessions, log),
		documents: services.NewDocumentService(httpClient, sessions),
		directory: services.NewDirectoryService(httpClient, sessions),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the persisted session, then hands control to the REPL.
// Blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	sess := a.sessions.Bootstrap(ctx)
	if sess.Status == services.StatusAuthenticated {
		printlnFn("Welcome back,", sess.Identity.Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// capabilities resolves the capability set of the current identity.
func (a *App) capabilities() authz.CapabilitySet {
	return authz.CapabilitiesFor(a.sessions.Identity())
}

// status builds the prompt suffix: user email and canonical role when a
// session exists.
func (a *App) status() string {
	sess := a.sessions.Current()
	if sess.Status != services.StatusAuthenticated {
		return ""
	}
	return "(" + sess.Identity.Email + ")"
}

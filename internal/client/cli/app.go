// Package cli implements the interactive ImaraRent console: a small REPL
// shell over the authentication flow, the session manager, and the view
// router.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/imararent/imararent/internal/client/api"
	"github.com/imararent/imararent/internal/client/config"
	"github.com/imararent/imararent/internal/client/flow"
	"github.com/imararent/imararent/internal/client/models"
	"github.com/imararent/imararent/internal/client/repositories/state"
	"github.com/imararent/imararent/internal/client/session"
	"github.com/imararent/imararent/internal/common"
	"github.com/imararent/imararent/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the console together. The session manager is the single writer
// of the session record; the REPL and header rendering only read it.
type App struct {
	config   *config.Config
	client   api.Client
	sessions *session.Manager
	flow     *flow.Controller
	logger   logging.Logger
	reader   *bufio.Reader

	// tenantView is the explicit view-mode toggle. Only Admin/Manager may
	// flip it; for tenants it is pinned on.
	tenantView bool
}

// NewApp builds the console from its configuration: local state database,
// backend HTTP client, session manager, and auth flow controller.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := state.InitDatabase(ctx, cfg.StateDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing state database", "error", err)
		return nil, err
	}

	repo := state.NewSQLiteRepository(db)
	store := session.NewKeyedStore(repo, common.SessionRecordKey)
	sessions := session.NewManager(store)

	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)
	controller := flow.NewController(client, sessions)

	return &App{
		config:   cfg,
		client:   client,
		sessions: sessions,
		flow:     controller,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and enters the REPL. It returns when
// the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	user, err := a.sessions.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if user != nil {
		a.applyLoginViewDefaults()
		a.logger.Info(ctx, "session restored", "email", user.Email, "role", string(user.Role))
	}

	a.Root(ctx)
}

// applyLoginViewDefaults mirrors the shell behavior on login: tenants start
// (and stay) in the tenant portal, everyone else starts in the admin shell.
func (a *App) applyLoginViewDefaults() {
	u := a.sessions.Current()
	if u == nil {
		a.tenantView = false
		return
	}
	a.tenantView = u.Role == models.RoleTenant
}

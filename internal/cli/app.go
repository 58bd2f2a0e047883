package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/config"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophsocial/internal/services"
	"github.com/dmitrijs2005/gophsocial/internal/session"
)

// newRepositoryManager is a seam for tests that must not reach a server.
var newRepositoryManager = repomanager.New

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	accounts *services.AccountService
	social   *services.SocialService
	session  *session.Session
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the configured store. A wrapped common.ErrConnection is
// returned when the graph cannot be reached.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, err
	}
	return newApp(c, repos, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, repos repomanager.RepositoryManager, logger logging.Logger, in io.Reader, out io.Writer) *App {
	repo := repos.Users()
	return &App{
		config:   c,
		logger:   logger,
		repos:    repos,
		accounts: services.NewAccountService(repo, logger, services.AccountOptions{LegacyLogin: c.LegacyLogin}),
		social:   services.NewSocialService(repo, logger),
		session:  session.New(),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run starts the REPL and closes the store when it returns. The error is
// non-nil only when the session ended on a fatal store failure.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.repos.Close(ctx); err != nil {
			a.logger.Warn(ctx, "closing store", "error", err)
		}
	}()

	printlnFn(titleStyle.Render("Welcome to GophSocial") + " (type 'help' for commands)")
	return runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.SignedIn()
}

func (a *App) status() string {
	if h, err := a.session.Handle(); err == nil {
		return "@" + h
	}
	return "guest"
}

package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/accounts"
	"github.com/dmitrijs2005/notekeeper/internal/kvstore"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/notes"
)

// FileService is the part of notes.FileStore the client uses.
type FileService interface {
	Upload(ctx context.Context, name, mimeType string, body io.Reader) (*notes.FileRecord, error)
	List(ctx context.Context) []notes.FileRecord
	Search(ctx context.Context, query string) []notes.FileRecord
	Get(ctx context.Context, id string) (*notes.File, error)
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context) (notes.PruneReport, error)
	Usage(ctx context.Context) (kvstore.Usage, error)
}

// AccountService is the part of accounts.AccountStore the client uses.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*accounts.Account, error)
	Authenticate(ctx context.Context, username, password string) (*accounts.Session, error)
	EndSession(ctx context.Context) error
	CurrentSession(ctx context.Context) (*accounts.Session, error)
	PromoteAdmin(ctx context.Context, username string) error
	RevokeAdmin(ctx context.Context, username string) error
	ListAdmins(ctx context.Context) ([]accounts.Account, error)
	IsAdmin(ctx context.Context, username string) (bool, error)
	HasAccount(ctx context.Context, username string) (bool, error)
}

// Options tune the client.
type Options struct {
	// MaxUpload rejects larger files before they reach the store; 0 disables
	// the check.
	MaxUpload int64
	// OperationTimeout bounds each store call; 0 means no timeout.
	OperationTimeout time.Duration

	In  io.Reader
	Out io.Writer
}

type App struct {
	files    FileService
	accounts AccountService
	logger   logging.Logger
	opts     Options

	reader  *bufio.Reader
	out     io.Writer
	session *accounts.Session
}

func NewApp(files FileService, accts AccountService, logger logging.Logger, opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &App{
		files:    files,
		accounts: accts,
		logger:   logger.With("component", "cli"),
		opts:     opts,
		reader:   bufio.NewReader(opts.In),
		out:      opts.Out,
	}
}

// Run restores the persisted session and serves commands until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.restoreSession(ctx); err != nil {
		return err
	}
	a.println("Welcome to notekeeper (type 'help' for commands)")
	runREPL(ctx, a)
	return nil
}

func (a *App) restoreSession(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.accounts.CurrentSession(opCtx)
	if err != nil {
		return err
	}
	a.session = s
	if s != nil {
		a.logger.Debug(ctx, "session restored", "username", s.Username)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) isAdmin() bool {
	return a.session != nil && a.session.IsAdmin
}

func (a *App) status() string {
	switch {
	case a.isAdmin():
		return a.session.Username + " admin"
	case a.isLoggedIn():
		return a.session.Username
	default:
		return "anonymous"
	}
}

// opContext derives the context for one store call.
func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opts.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.opts.OperationTimeout)
}

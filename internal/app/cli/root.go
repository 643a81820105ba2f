// Package cli is the admin console: every page of the marketplace admin
// dashboard is a command backed by the admin API client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"marketadmin/internal/app/client"
	"marketadmin/internal/app/config"
	"marketadmin/internal/app/session"
	"marketadmin/internal/app/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Deps lets callers and tests replace what the console would otherwise
// build from configuration.
type Deps struct {
	Config  *config.Config   // read from --config and the environment when nil
	Fs      afero.Fs         // token file and local product files; the OS when nil
	Session *session.Session // built from Config.TokenStore when nil
}

type app struct {
	deps    Deps
	out     io.Writer
	cfg     *config.Config
	client  *client.Client
	files   *storage.Resolver
	closers []func()

	apiURL     string
	configFile string
	logLevel   string
}

func newApp(deps Deps, out io.Writer) *app {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	return &app{deps: deps, out: out}
}

// NewRootCommand builds the admin command tree writing to out.
func NewRootCommand(deps Deps, out io.Writer) *cobra.Command {
	return newApp(deps, out).command()
}

// Execute runs the console with args and returns the process exit code.
// Failures are printed as their message only.
func Execute(ctx context.Context, deps Deps, args []string, stdout, stderr io.Writer) int {
	a := newApp(deps, stdout)
	defer a.close()

	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Marketplace admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if a.logLevel == "" {
				return nil
			}
			return setLogLevel(a.logLevel)
		},
	}
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "admin API base URL (overrides ADMIN_API_URL)")
	pf.StringVar(&a.configFile, "config", "", "path to a toml config file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.usersCmd(),
		a.categoriesCmd(),
		a.productsCmd(),
		a.paymentsCmd(),
		a.ordersCmd(),
		a.licensesCmd(),
	)
	return root
}

func setLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logrus.SetLevel(lvl)
	return nil
}

// api returns the client, loading configuration and the session on first
// use so that help and usage output never touch the token store.
func (a *app) api(ctx context.Context) (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	cfg := a.deps.Config
	if cfg == nil {
		var err error
		if cfg, err = config.NewConfig(a.configFile); err != nil {
			return nil, err
		}
		if a.logLevel == "" {
			if err := setLogLevel(cfg.LogLevel); err != nil {
				return nil, err
			}
		}
	}
	if a.apiURL != "" {
		cfg.APIURL = strings.TrimRight(a.apiURL, "/")
	}
	a.cfg = cfg

	sess := a.deps.Session
	if sess == nil {
		var err error
		if sess, err = a.openSession(ctx, cfg); err != nil {
			return nil, err
		}
	}

	a.client = client.New(cfg.APIURL, sess, client.WithLogger(logrus.WithField("component", "admin-client")))
	return a.client, nil
}

func (a *app) openSession(ctx context.Context, cfg *config.Config) (*session.Session, error) {
	var store session.TokenStore
	switch cfg.TokenStore.Driver {
	case "memory":
		store = session.NewMemoryStore()
	case "redis":
		rc, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		rs := session.NewRedisStore(rc, cfg.Redis.Key)
		a.closers = append(a.closers, func() { _ = rs.Close() })
		store = rs
	default:
		store = session.NewFileStore(a.deps.Fs, cfg.TokenStore.File)
	}
	return session.New(ctx, store)
}

// resolver opens product files given on the command line. A MinIO
// connection is only made when the configuration names a bucket.
func (a *app) resolver(ctx context.Context) (*storage.Resolver, error) {
	if a.files != nil {
		return a.files, nil
	}
	if _, err := a.api(ctx); err != nil {
		return nil, err
	}
	r := &storage.Resolver{Local: storage.NewLocalSource(a.deps.Fs)}
	if a.cfg.MinIO.Enabled() {
		bucket, err := storage.NewMinIOSource(ctx, a.cfg.MinIO)
		if err != nil {
			return nil, err
		}
		r.MinIO = bucket
	}
	a.files = r
	return r, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}

var errNotLoggedIn = errors.New("not logged in")

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// Package app is the composition root of the snooze CLI: it loads
// config, builds the logger, the credential store, the API client and
// the controller, then dispatches one command per invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hacksnooze/snooze/internal/api"
	"github.com/hacksnooze/snooze/internal/config"
	"github.com/hacksnooze/snooze/internal/controller"
	"github.com/hacksnooze/snooze/internal/domain"
	"github.com/hacksnooze/snooze/internal/logger"
	"github.com/hacksnooze/snooze/internal/redis"
	"github.com/hacksnooze/snooze/internal/render"
	"github.com/hacksnooze/snooze/internal/session"
	memorystore "github.com/hacksnooze/snooze/internal/store/memory"
	redisstore "github.com/hacksnooze/snooze/internal/store/redis"
	"github.com/hacksnooze/snooze/internal/utils"
	"github.com/hacksnooze/snooze/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	ctrl        *controller.Controller
	renderer    *render.Text
	redisClient *goredis.Client
}

// New wires the application. The credential store is Redis unless the
// config asks for an ephemeral run.
func New() (*App, error) {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var creds session.CredStore
	var redisClient *goredis.Client
	if cfg.Ephemeral {
		loggerClient.Debug("ephemeral run, credentials will not be persisted")
		creds = memorystore.New()
	} else {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("credential store unavailable: %w", err)
		}
		redisClient = client
		creds = redisstore.NewStore(client)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, loggerClient)
	sessions := session.NewManager(client.Users(), creds, loggerClient)
	ctrl := controller.New(client, sessions, loggerClient)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		ctrl:        ctrl,
		renderer:    render.NewText(os.Stdout),
		redisClient: redisClient,
	}, nil
}

// Run executes one command and renders its result. The session is
// restored from durable storage first, so commands continue whatever
// the previous invocation left behind.
func (a *App) Run(args []string) error {
	defer func() {
		_ = a.logger.Sync()
		if a.redisClient != nil {
			utils.MustClose(a.redisClient)
		}
	}()

	ctx := context.Background()

	name := "feed"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	if name == "version" {
		fmt.Printf("snooze %s (commit=%s, built=%s, go=%s)\n",
			version.Version, version.Commit, version.BuildDate, version.GoVersion)
		return nil
	}

	startup := a.ctrl.Startup(ctx)
	if name == "feed" {
		a.renderer.Render(startup)
		return resultErr(startup)
	}
	if startup.Err != nil {
		a.logger.Warn("startup refresh failed", logger.Error(startup.Err))
	}

	res, err := a.dispatch(ctx, name, args)
	if err != nil {
		return err
	}
	a.renderer.Render(res)
	return resultErr(res)
}

func (a *App) dispatch(ctx context.Context, name string, args []string) (controller.Result, error) {
	switch name {
	case "login":
		if len(args) != 2 {
			return controller.Result{}, usage("login <username> <password>")
		}
		return a.ctrl.Login(ctx, args[0], args[1]), nil

	case "signup":
		if len(args) < 3 || len(args) > 4 {
			return controller.Result{}, usage("signup <username> <password> <name> [phone]")
		}
		s := api.Signup{Username: args[0], Password: args[1], Name: args[2]}
		if len(args) == 4 {
			s.Phone = args[3]
		}
		return a.ctrl.Signup(ctx, s), nil

	case "logout":
		return a.ctrl.Logout(ctx), nil

	case "favorites":
		return a.ctrl.ToggleView(ctx), nil

	case "submit":
		if len(args) != 2 {
			return controller.Result{}, usage("submit <title> <url>")
		}
		return a.ctrl.CreateStory(ctx, args[0], args[1]), nil

	case "delete":
		if len(args) != 1 {
			return controller.Result{}, usage("delete <story-id>")
		}
		return a.ctrl.DeleteStory(ctx, storyID(args[0])), nil

	case "edit":
		if len(args) != 3 {
			return controller.Result{}, usage("edit <story-id> <title> <url>")
		}
		return a.ctrl.EditStory(ctx, storyID(args[0]), args[1], args[2]), nil

	case "fav":
		if len(args) != 1 {
			return controller.Result{}, usage("fav <story-id>")
		}
		return a.ctrl.ToggleFavorite(ctx, storyID(args[0])), nil

	case "profile":
		if len(args) < 1 || len(args) > 2 {
			return controller.Result{}, usage("profile <name> [new-password]")
		}
		password := ""
		if len(args) == 2 {
			password = args[1]
		}
		return a.ctrl.UpdateProfile(ctx, args[0], password), nil

	case "delete-account":
		return a.ctrl.DeleteAccount(ctx), nil

	case "recover":
		if len(args) != 1 {
			return controller.Result{}, usage("recover <username>")
		}
		return a.ctrl.RequestRecoveryCode(ctx, args[0]), nil

	case "reset":
		if len(args) != 2 {
			return controller.Result{}, usage("reset <code> <new-password>")
		}
		return a.ctrl.SubmitRecoveryCode(ctx, args[0], "", args[1]), nil

	case "refresh":
		return a.ctrl.Refresh(ctx), nil

	default:
		return controller.Result{}, fmt.Errorf("unknown command %q\n%s", name, commandList)
	}
}

const commandList = `commands:
  feed                                  show the front page (default)
  favorites                             show your favorites
  login <username> <password>
  signup <username> <password> <name> [phone]
  logout
  submit <title> <url>
  delete <story-id>
  edit <story-id> <title> <url>
  fav <story-id>                        toggle favorite
  profile <name> [new-password]
  delete-account
  recover <username>
  reset <code> <new-password>
  refresh
  version`

func usage(u string) error {
	return fmt.Errorf("usage: snooze %s", u)
}

func storyID(raw string) domain.StoryID {
	return domain.StoryID(strings.TrimSpace(raw))
}

// ErrCommandFailed signals a non-zero exit after the renderer already
// showed the alert, so main should not print it again.
var ErrCommandFailed = errors.New("command failed")

func resultErr(res controller.Result) error {
	if res.Err != nil {
		return ErrCommandFailed
	}
	return nil
}

package daemon

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/api"
	"github.com/ricardofn/wagate/internal/bridge"
	"github.com/ricardofn/wagate/internal/config"
	"github.com/ricardofn/wagate/internal/httpapi"
	"github.com/ricardofn/wagate/internal/lock"
	"github.com/ricardofn/wagate/internal/logging"
	"github.com/ricardofn/wagate/internal/store"
)

// Params holds the startup options passed to the fx module.
type Params struct {
	ConfigPath string
	// InitStore provisions a fresh schema before serving. Development only;
	// the production store is owned and populated by the bridge.
	InitStore bool
}

// Module returns the fx module for the gateway, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("wagated",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideLock,
			provideStore,
			provideBridge,
			provideChatService,
			provideMessageService,
			provideContactService,
			provideSendService,
			provideRouter,
			provideServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	path := p.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogPath)
}

func provideLock(cfg *config.Config, logger *zap.Logger) (*lock.Lock, error) {
	l, err := lock.Acquire(cfg.RunDir)
	if err != nil {
		return nil, err
	}
	logger.Info("gateway lock acquired", zap.String("run_dir", cfg.RunDir))
	return l, nil
}

func provideStore(p Params, cfg *config.Config, logger *zap.Logger) (*store.DB, error) {
	db, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	if p.InitStore {
		result, err := db.Migrate()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("development schema provisioned",
			zap.Uint("version", result.Version),
			zap.Bool("changed", result.Changed))
	}
	logger.Info("store opened", zap.String("path", cfg.StorePath))
	return db, nil
}

func provideBridge(cfg *config.Config, logger *zap.Logger) *bridge.Client {
	return bridge.New(cfg.BridgeURL, logger)
}

func provideChatService(db *store.DB, logger *zap.Logger) *api.ChatService {
	return api.NewChatService(db, logger)
}

func provideMessageService(db *store.DB, logger *zap.Logger) *api.MessageService {
	return api.NewMessageService(db, logger)
}

func provideContactService(db *store.DB, logger *zap.Logger) *api.ContactService {
	return api.NewContactService(db, logger)
}

func provideSendService(b *bridge.Client, logger *zap.Logger) *api.SendService {
	return api.NewSendService(b, logger)
}

func provideRouter(
	chats *api.ChatService,
	messages *api.MessageService,
	contacts *api.ContactService,
	sends *api.SendService,
	logger *zap.Logger,
) http.Handler {
	return httpapi.NewRouter(httpapi.Services{
		Chats:    chats,
		Messages: messages,
		Contacts: contacts,
		Sends:    sends,
	}, logger)
}

func provideServer(cfg *config.Config, handler http.Handler, logger *zap.Logger) *Server {
	return NewServer(cfg.ListenAddr, handler, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, db *store.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("http server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("gateway stopped")
			return nil
		},
	})
}

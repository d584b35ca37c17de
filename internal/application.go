package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

const saveTimeout = 10 * time.Second

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrInvalidBotMark = errors.New("bot mark must be X or O")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	botMark, err := entity.ParseMark(conf.Bot.Mark)
	if err != nil || !botMark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidBotMark, conf.Bot.Mark)
	}

	engine, err := tictactoe.NewEngine(botMark, nil)
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}

	if conf.Redis.Enabled {
		closeScores, err := warmScores(ctx, log, conf, engine)
		if err != nil {
			return err
		}

		defer closeScores()
	}

	gameRepo := repository.NewGameRepository()
	gameManager := usecase.NewGameManager(logger, gameRepo, engine, botMark, conf.Bot.ReplyDelay)

	group, groupCtx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.Start(groupCtx, conf.HTTPPort, rest.NewRouter(logger, engine)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if err := wsServer.Start(groupCtx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// warmScores - loads shared scores into the engine cache. The returned func saves the cache
// back and closes the connection.
func warmScores(ctx context.Context, log *slog.Logger, conf *config.Config, engine *tictactoe.Engine) (func(), error) {
	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	scoreRepo := repository.NewScoreRepository(redisStorage.Connection)

	loaded, err := scoreRepo.Load(ctx, engine.Maximizer(), engine.Cache())
	if err != nil {
		log.Warn("could not load scores, starting cold", "error", err)
	}

	log.Info("scores loaded", "maximizer", engine.Maximizer().String(), "entries", loaded)

	return func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		added, err := scoreRepo.Save(saveCtx, engine.Maximizer(), engine.Cache())
		if err != nil {
			log.Error("could not save scores", "error", err)
		} else {
			log.Info("scores saved", "entries", engine.Cache().Len(), "new", added)
		}

		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}, nil
}

// Package main запускает HTTP-сервис справочника пользователей
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"user-directory-service/internal/auth"
	"user-directory-service/internal/config"
	httpapi "user-directory-service/internal/http"
	"user-directory-service/internal/logger"
	"user-directory-service/internal/model"
	"user-directory-service/internal/repository"
	"user-directory-service/internal/service"
)

func main() {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// bootstrap-логгер до чтения конфигурации
	bootstrap := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		bootstrap.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.NewSlog(logger.SlogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// 1. Хранилище и менеджер транзакций
	store, txManager, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init store", slog.Any("err", err))
		os.Exit(1)
	}
	defer closeStore()

	// 2. Шлюз аутентификации
	authn, err := buildAuthenticator(cfg)
	if err != nil {
		log.Error("failed to init authenticator", slog.Any("err", err))
		os.Exit(1)
	}

	// 3. Сервисы
	userService := service.NewUserService(store, txManager, service.Options{Strict: cfg.StrictValidation})
	authService := service.NewAuthService(authn)

	// 4. HTTP-обработчик
	handler := httpapi.NewHandler(userService, authService, authn, log, httpapi.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:    net.JoinHostPort("", cfg.ServerPort),
		Handler: handler.Router(),
	}

	// Запуск сервера в горутине
	go func() {
		log.Info("starting http server",
			slog.String("addr", server.Addr),
			slog.String("store", cfg.StoreDriver),
			slog.Bool("strict_validation", cfg.StrictValidation),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("server shutdown error", slog.Any("err", err))
	}

	log.Info("server stopped")
}

func buildStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.RecordStore, service.TransactionManager, func(), error) {
	if cfg.StoreDriver == config.StorePostgres {
		db, err := repository.NewPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		log.Info("using postgres store")
		return store, repository.NewTransactionManager(db), func() { _ = db.Close() }, nil
	}

	store := repository.NewFileStore(cfg.UsersFile)
	log.Info("using file store", slog.String("path", store.Path()))
	return store, repository.NewLockManager(), func() {}, nil
}

func buildAuthenticator(cfg *config.Config) (*auth.Authenticator, error) {
	accounts, err := auth.LoadAccounts(cfg.Auth.AccountsFile)
	if err != nil {
		return nil, err
	}

	if cfg.Auth.AdminLogin != "" {
		accounts = append(accounts, auth.Account{
			Login:        cfg.Auth.AdminLogin,
			PasswordHash: cfg.Auth.AdminPasswordHash,
			Roles:        []string{model.RoleAdmin},
		})
	}

	tokens := auth.NewTokens(auth.TokenConfig{
		Secret: []byte(cfg.Auth.JWTSecret),
		Issuer: cfg.Auth.JWTIssuer,
		TTL:    cfg.Auth.JWTTTL,
	})
	return auth.NewAuthenticator(accounts, tokens)
}

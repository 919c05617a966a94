package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"posstock/config"
	"posstock/internal/api/product"
	"posstock/internal/api/router"
	"posstock/internal/api/stock"
	"posstock/internal/api/user"
	"posstock/internal/pkg/cache"
	"posstock/internal/pkg/database"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/token"
	"posstock/internal/reconcile"
	"posstock/internal/repository/productrepo"
	"posstock/internal/repository/stockrepo"
	"posstock/internal/repository/userrepo"
	"posstock/internal/service/productservice"
	"posstock/internal/service/stockservice"
	"posstock/internal/service/userservice"
)

// @title posstock API
// @version 1.0
// @description Back-office de estoque do PDV: ajustes por unidade ou caixa, margens e cobertura de estoque.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env é opcional: em container as variáveis vêm do ambiente.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Aviso: arquivo .env não encontrado. Usando apenas o ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Infraestrutura
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Fatal("Falha ao conectar ao Redis.", err)
	}
	defer cacheClient.Close()
	log.Info("Conexão Redis estabelecida.", nil)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// Repository -> Service -> Handler
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	stockRepo := stockrepo.NewStockRepository(db, cacheClient, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)

	policy := reconcile.Policy{ReorderThresholdDays: cfg.ReorderThresholdDays}
	productSvc := productservice.NewService(productRepo, productRepo, log, policy, cfg.SalesWindowDays)
	stockSvc := stockservice.NewService(productRepo, stockRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)

	handler := router.NewRouter(router.Deps{
		Products:             product.NewHandler(productSvc, log),
		Stock:                stock.NewHandler(stockSvc, log),
		Users:                user.NewHandler(userSvc, log),
		Tokens:               tokenSvc,
		Cache:                cacheClient,
		Logger:               log,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		RequestTimeout:       30 * time.Second,
		EnableDocs:           !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Servidor posstock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}
	log.Info("Servidor encerrado com sucesso.", nil)
}

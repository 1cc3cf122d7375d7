package main

import (
	"os"

	"github.com/joho/godotenv"

	"smartcart/internal/config"
	"smartcart/internal/domain/model"
	"smartcart/internal/handler"
	"smartcart/internal/infra/db"
	infraRepo "smartcart/internal/infra/repository"
	"smartcart/internal/mailer"
	"smartcart/internal/server"
	"smartcart/internal/usecase"
	"smartcart/internal/validator"
	"smartcart/pkg/logger"
)

func main() {
	// .envは任意（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "smartcart-api",
		Env:     cfg.GoEnv,
		Level:   os.Getenv("LOG_LEVEL"),
	})

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewGormTxManager(gormDB)

	//部品
	mail := mailer.NewSendGridMailer(cfg, log)
	authValidator := validator.NewAuthValidator(userRepo)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, authValidator, mail, log)
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, cartRepo, orderRepo, userRepo, mail, log)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
		Order:    handler.NewOrderHandler(orderUC),
	}

	//Server起動
	e := server.New(cfg, h)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	log.Info("server starting", "addr", addr)
	if err := server.Start(e, addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

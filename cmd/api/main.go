package main

import (
	"context"
	"log"
	"time"

	"timepiece/internal/config"
	"timepiece/internal/handler"
	"timepiece/internal/infra/db"
	infraRepo "timepiece/internal/infra/repository"
	"timepiece/internal/media"
	"timepiece/internal/server"
	"timepiece/internal/usecase"
	auth "timepiece/internal/usecase/auth_usecase"
	"timepiece/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	urls := media.NewURLBuilder(cfg.MediaURL)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}

	//JWT issuer
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, &uuidGenerator{})

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, validator.NewSignupValidator(), clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock, dummyHash)
	profileUC := auth.NewProfileUsecase(userRepo, urls)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, urls)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo, urls)
	orderUC := usecase.NewOrderUsecase(txManager, urls)

	//Handler生成
	e := server.New(cfg, userRepo, server.Handlers{
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC),
		Auth:    handler.NewAuthHandler(registerUC, loginUC, profileUC),
	})

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Run(context.Background(), e, addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

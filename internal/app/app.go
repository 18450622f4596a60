// Package app wires configuration, AWS clients, repositories, and services
// into a runnable application.
package app

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"helheim/internal/config"
	"helheim/internal/domain"
	"helheim/internal/provision"
	"helheim/internal/repository"
	accountsvc "helheim/internal/service/account"
	realmsvc "helheim/internal/service/realm"
	securitysvc "helheim/internal/service/security"
	"helheim/internal/store"
	"helheim/internal/token"
)

// Deps holds the external dependencies for App construction.
type Deps struct {
	Cfg    *config.Config
	AWS    aws.Config
	Logger *slog.Logger
}

// Services bundles the application services.
type Services struct {
	Realms   *realmsvc.Service
	Accounts *accountsvc.Service
	Auth     *securitysvc.AuthService
}

// App is the assembled application.
type App struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Services Services

	// TokenCodec is exposed for the HTTP auth middleware.
	TokenCodec domain.TokenCodec
}

// New builds the App from its dependencies. All AWS clients are derived from
// the single shared aws.Config.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger

	codec, err := token.NewHS256Codec(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	hasher := token.NewBcryptHasher()

	dynamoClient := dynamodb.NewFromConfig(deps.AWS)
	realmStore := store.NewDynamoStore(dynamoClient, store.TableSpec{
		Name:         cfg.RealmsTable,
		PartitionKey: "guid",
		SortKey:      "s_key",
	})
	accountStore := store.NewDynamoStore(dynamoClient, store.TableSpec{
		Name:         cfg.AuthTable,
		PartitionKey: "guid",
	})

	realmRepo := repository.NewRealmRepo(realmStore, cfg.RealmsUserGSI)
	accountRepo := repository.NewAccountRepo(accountStore, cfg.AuthUsernameGSI)

	provisioner := provision.NewLambdaProvisioner(
		lambda.NewFromConfig(deps.AWS), cfg.InstanceLambda,
		logger.With("component", "provisioner"))
	compute := provision.NewEC2Controller(
		ec2.NewFromConfig(deps.AWS),
		logger.With("component", "compute"))
	worlds := store.NewS3ObjectStore(s3.NewFromConfig(deps.AWS), cfg.WorldsBucket)

	services := Services{
		Realms: realmsvc.NewService(realmRepo, provisioner, compute, worlds,
			logger.With("component", "realm")),
		Accounts: accountsvc.NewService(accountRepo, hasher),
		Auth: securitysvc.NewAuthService(accountRepo, codec, hasher,
			cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
	}

	return &App{
		Cfg:        cfg,
		Logger:     logger,
		Services:   services,
		TokenCodec: codec,
	}, nil
}

//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"linkpage-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideStore,
	ProvideS3Client,
	ProvidePresignClient,
	ProvideCloudWatchClient,
	ProvideMetrics,
	ProvideDomainConfig,
	ProvideProfileRepository,
	ProvidePageRepository,
	ProvidePostRepository,
	ProvideFollowRepository,
	ProvideBlobStore,
	ProvideProvisioner,
	ProvideProfileService,
	ProvidePageService,
	ProvidePostService,
	ProvideFollowService,
	ProvideMediaService,
	ProvideJWTValidator,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}

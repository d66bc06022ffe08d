// Package di wires the application together. Providers are plain
// constructors; wire generates the assembly in wire_gen.go.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	"linkpage-backend/application/services"
	domaincfg "linkpage-backend/domain/config"
	"linkpage-backend/infrastructure/blobstore/s3"
	"linkpage-backend/infrastructure/config"
	"linkpage-backend/infrastructure/persistence/dynamodb"
	"linkpage-backend/pkg/auth"
	"linkpage-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Provisioner *services.Provisioner
	Profiles    *services.ProfileService
	Pages       *services.PageService
	Posts       *services.PostService
	Follows     *services.FollowService
	Media       *services.MediaService
	Metrics     *observability.Metrics
	Validator   *auth.JWTValidator
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideStore exposes the client through the narrow Store interface the
// repositories depend on
func ProvideStore(client *awsdynamodb.Client) dynamodb.Store {
	return client
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvidePresignClient creates an S3 presign client
func ProvidePresignClient(client *awss3.Client) *awss3.PresignClient {
	return awss3.NewPresignClient(client)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the metrics instance. Disabled deployments get a
// nil-client instance that drops every datum.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("LinkPage/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil)
	}
	return observability.NewMetrics(namespace, client)
}

// ProvideDomainConfig loads the business rule limits for the environment
func ProvideDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	return domaincfg.LoadDomainConfig(cfg.Environment)
}

// ProvideProfileRepository creates the profile repository
func ProvideProfileRepository(store dynamodb.Store, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewProfileRepository(store, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvidePageRepository creates the page repository
func ProvidePageRepository(store dynamodb.Store, cfg *config.Config, logger *zap.Logger) ports.PageRepository {
	return dynamodb.NewPageRepository(store, cfg.DynamoDBTable, logger)
}

// ProvidePostRepository creates the post repository
func ProvidePostRepository(store dynamodb.Store, cfg *config.Config, logger *zap.Logger) ports.PostRepository {
	return dynamodb.NewPostRepository(store, cfg.DynamoDBTable, logger)
}

// ProvideFollowRepository creates the follow repository
func ProvideFollowRepository(store dynamodb.Store, cfg *config.Config, logger *zap.Logger) ports.FollowRepository {
	return dynamodb.NewFollowRepository(store, cfg.DynamoDBTable, logger)
}

// ProvideBlobStore creates the S3-backed blob store
func ProvideBlobStore(presigner *awss3.PresignClient, cfg *config.Config, logger *zap.Logger) ports.BlobStore {
	return s3.NewBlobStore(
		presigner,
		cfg.MediaBucket,
		cfg.MediaCDNDomain,
		time.Duration(cfg.UploadURLExpiry)*time.Second,
		logger,
	)
}

// ProvideProvisioner creates the profile provisioner
func ProvideProvisioner(profiles ports.ProfileRepository, logger *zap.Logger) *services.Provisioner {
	return services.NewProvisioner(profiles, logger)
}

// ProvideProfileService creates the profile service
func ProvideProfileService(profiles ports.ProfileRepository, limits *domaincfg.DomainConfig, logger *zap.Logger) *services.ProfileService {
	return services.NewProfileService(profiles, limits, logger)
}

// ProvidePageService creates the page service
func ProvidePageService(pages ports.PageRepository, profiles ports.ProfileRepository, limits *domaincfg.DomainConfig, logger *zap.Logger) *services.PageService {
	return services.NewPageService(pages, profiles, limits, logger)
}

// ProvidePostService creates the post service
func ProvidePostService(posts ports.PostRepository, profiles ports.ProfileRepository, limits *domaincfg.DomainConfig, logger *zap.Logger) *services.PostService {
	return services.NewPostService(posts, profiles, limits, logger)
}

// ProvideFollowService creates the follow service
func ProvideFollowService(follows ports.FollowRepository, profiles ports.ProfileRepository, logger *zap.Logger) *services.FollowService {
	return services.NewFollowService(follows, profiles, logger)
}

// ProvideMediaService creates the media service
func ProvideMediaService(blobs ports.BlobStore, logger *zap.Logger) *services.MediaService {
	return services.NewMediaService(blobs, logger)
}

// ProvideJWTValidator creates the JWT validator. A deployment without a
// configured secret runs behind the gateway authorizer and validates
// nothing locally; the router falls back to the gateway trust path.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"linkpage-backend/infrastructure/config"
	"linkpage-backend/infrastructure/di"
	"linkpage-backend/interfaces/resolver"
	"linkpage-backend/pkg/observability"
)

var (
	appResolver *resolver.Resolver
	tracer      *observability.Tracer
)

// init runs during cold start
func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	appResolver = resolver.NewResolver(
		container.Provisioner,
		container.Profiles,
		container.Pages,
		container.Posts,
		container.Follows,
		container.Media,
		container.Metrics,
		container.Logger,
	)

	if cfg.EnableTracing {
		tracer = observability.NewTracer("linkpage-resolver")
	}
}

// Handler dispatches one resolver event
func Handler(ctx context.Context, event resolver.Event) (interface{}, error) {
	if tracer == nil {
		return appResolver.Resolve(ctx, event)
	}

	var result interface{}
	err := tracer.TraceField(ctx, event.Info.FieldName, func(ctx context.Context) error {
		var resolveErr error
		result, resolveErr = appResolver.Resolve(ctx, event)
		return resolveErr
	})
	return result, err
}

func main() {
	lambda.Start(Handler)
}

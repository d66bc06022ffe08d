package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"linkpage-backend/application/services"
	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/observability"
	"linkpage-backend/pkg/utils"
)

// Resolver routes events to the application services. Every operation runs
// behind the provisioner, so the caller's bootstrap rows exist before any
// business logic touches them.
type Resolver struct {
	provisioner *services.Provisioner
	profiles    *services.ProfileService
	pages       *services.PageService
	posts       *services.PostService
	follows     *services.FollowService
	media       *services.MediaService
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewResolver creates a new resolver
func NewResolver(
	provisioner *services.Provisioner,
	profiles *services.ProfileService,
	pages *services.PageService,
	posts *services.PostService,
	follows *services.FollowService,
	media *services.MediaService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		provisioner: provisioner,
		profiles:    profiles,
		pages:       pages,
		posts:       posts,
		follows:     follows,
		media:       media,
		metrics:     metrics,
		logger:      logger,
	}
}

// Resolve handles one event: authenticate, provision, dispatch
func (r *Resolver) Resolve(ctx context.Context, event Event) (result interface{}, err error) {
	start := time.Now()
	field := event.Info.FieldName
	defer func() {
		r.metrics.RecordOperation(ctx, field, time.Since(start), err)
		if err != nil {
			if appErr := apperrors.GetAppError(err); appErr != nil {
				r.metrics.RecordError(ctx, string(appErr.Type), field)
			}
			r.logger.Warn("operation failed",
				zap.String("field", field),
				zap.String("sub", event.Identity.Sub),
				zap.Error(err))
		}
	}()

	if event.Identity.Sub == "" {
		return nil, apperrors.NewUnauthorizedError("missing caller identity")
	}

	caller, err := r.provisioner.EnsureProfile(ctx, domain.Identity{
		SubjectID: event.Identity.Sub,
		Username:  event.Identity.Username,
	})
	if err != nil {
		return nil, err
	}

	switch field {
	case "getCurrentProfile":
		return caller, nil

	case "getProfile":
		var args struct {
			SubjectID string `json:"subjectId"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if args.SubjectID == "" {
			return caller, nil
		}
		return r.profiles.Get(ctx, args.SubjectID)

	case "searchProfiles":
		var args struct {
			UsernamePrefix string `json:"usernamePrefix" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.profiles.Search(ctx, args.UsernamePrefix)

	case "getCurrentPage":
		return r.pages.GetPage(ctx, caller.SubjectID)

	case "getPage":
		var args struct {
			SubjectID string `json:"subjectId"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		ownerID := args.SubjectID
		if ownerID == "" {
			ownerID = caller.SubjectID
		}
		return r.pages.GetPage(ctx, ownerID)

	case "addComponent":
		var args struct {
			Type string `json:"type" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.pages.AddComponent(ctx, caller.SubjectID, domain.ComponentType(args.Type))

	case "removeComponent":
		var args struct {
			ComponentID string `json:"componentId" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.pages.RemoveComponent(ctx, caller.SubjectID, args.ComponentID)

	case "moveComponent":
		var args struct {
			ComponentID string `json:"componentId" validate:"required"`
			NewOrder    int    `json:"newOrder" validate:"gte=0"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.pages.MoveComponent(ctx, caller.SubjectID, args.ComponentID, args.NewOrder)

	case "editComponent":
		var args struct {
			ComponentID string                 `json:"componentId" validate:"required"`
			Updates     map[string]interface{} `json:"updates" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.pages.EditComponent(ctx, caller.SubjectID, args.ComponentID, args.Updates)

	case "listFollowing":
		return r.follows.ListFollowing(ctx, caller.SubjectID)

	case "follow":
		var args struct {
			TargetSubjectID string `json:"targetSubjectId" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.follows.Follow(ctx, caller.SubjectID, args.TargetSubjectID)

	case "unfollow":
		var args struct {
			TargetSubjectID string `json:"targetSubjectId" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.follows.Unfollow(ctx, caller.SubjectID, args.TargetSubjectID)

	case "listCurrentPosts":
		return r.posts.List(ctx, caller.SubjectID)

	case "listPosts":
		var args struct {
			SubjectID string `json:"subjectId"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		ownerID := args.SubjectID
		if ownerID == "" {
			ownerID = caller.SubjectID
		}
		return r.posts.List(ctx, ownerID)

	case "createTextPost":
		var args struct {
			Text string `json:"text" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.posts.CreateTextPost(ctx, caller.SubjectID, args.Text)

	case "getUploadUrl":
		var args struct {
			FileName    string `json:"fileName" validate:"required"`
			ContentType string `json:"contentType" validate:"required"`
		}
		if err := parseArguments(event.Arguments, &args); err != nil {
			return nil, err
		}
		if err := validateArguments(&args); err != nil {
			return nil, err
		}
		return r.media.IssueUploadTicket(ctx, caller.SubjectID, args.FileName, args.ContentType)

	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown operation: %s", field))
	}
}

// parseArguments decodes the raw arguments into the operation's typed shape
func parseArguments(raw json.RawMessage, into interface{}) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return apperrors.NewValidationError("malformed arguments").WithCause(err)
	}
	return nil
}

// validateArguments applies the struct's validation tags
func validateArguments(args interface{}) error {
	if err := utils.ValidateStruct(args); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

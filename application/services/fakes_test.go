package services

import (
	"context"
	"sort"
	"strings"

	"linkpage-backend/application/ports"
	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
)

// In-memory port implementations. They mirror the repository contracts
// (error kinds included) without any DynamoDB plumbing.

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
	pages    map[string]bool
	bios     map[string]bool

	bootstrapCalls int
	// createErr, when set, is returned by CreateBootstrap to simulate a
	// lost bootstrap race against another writer. raceProfile, when also
	// set, is installed as the winner's row before the error returns.
	createErr   error
	raceProfile *domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*domain.Profile),
		pages:    make(map[string]bool),
		bios:     make(map[string]bool),
	}
}

func (f *fakeProfileRepo) add(p *domain.Profile) {
	f.profiles[p.SubjectID] = p
	f.pages[p.SubjectID] = true
	f.bios[p.SubjectID] = true
}

func (f *fakeProfileRepo) Get(ctx context.Context, subjectID string) (*domain.Profile, error) {
	p, ok := f.profiles[subjectID]
	if !ok {
		return nil, apperrors.NewNotFoundError("profile")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Search(ctx context.Context, usernamePrefix string) ([]*domain.Profile, error) {
	var matches []*domain.Profile
	for _, p := range f.profiles {
		if strings.HasPrefix(p.Username, usernamePrefix) {
			cp := *p
			matches = append(matches, &cp)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Username < matches[j].Username })
	return matches, nil
}

func (f *fakeProfileRepo) GetBootstrapState(ctx context.Context, subjectID string) (*ports.BootstrapState, error) {
	state := &ports.BootstrapState{
		PageFound: f.pages[subjectID],
		BioFound:  f.bios[subjectID],
	}
	if p, ok := f.profiles[subjectID]; ok {
		cp := *p
		state.Profile = &cp
	}
	return state, nil
}

func (f *fakeProfileRepo) CreateBootstrap(ctx context.Context, profile *domain.Profile, page domain.Page, bio *domain.BioComponent) error {
	f.bootstrapCalls++
	if f.createErr != nil {
		if f.raceProfile != nil {
			f.add(f.raceProfile)
		}
		return f.createErr
	}
	if _, ok := f.profiles[profile.SubjectID]; ok {
		return apperrors.NewAlreadyExistsError("profile already exists")
	}
	f.add(profile)
	return nil
}

type fakePageRepo struct {
	pages      map[string]*domain.Page
	components map[string]map[string]domain.Component
	docs       map[string]map[string]map[string]interface{}
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{
		pages:      make(map[string]*domain.Page),
		components: make(map[string]map[string]domain.Component),
		docs:       make(map[string]map[string]map[string]interface{}),
	}
}

func (f *fakePageRepo) addPage(subjectID string, page domain.Page) {
	f.pages[subjectID] = &page
	if f.components[subjectID] == nil {
		f.components[subjectID] = make(map[string]domain.Component)
		f.docs[subjectID] = make(map[string]map[string]interface{})
	}
}

func (f *fakePageRepo) GetPageRows(ctx context.Context, subjectID string) (*domain.Page, []domain.Component, int, error) {
	page, ok := f.pages[subjectID]
	if !ok {
		return nil, nil, 0, apperrors.NewNotFoundError("page")
	}
	var components []domain.Component
	maxOrder := 0
	for _, c := range f.components[subjectID] {
		components = append(components, c)
		if c.Order() > maxOrder {
			maxOrder = c.Order()
		}
	}
	cp := *page
	return &cp, components, maxOrder, nil
}

func (f *fakePageRepo) PutComponent(ctx context.Context, subjectID string, component domain.Component) error {
	f.components[subjectID][component.ID()] = component
	f.docs[subjectID][component.ID()] = componentDoc(component)
	return nil
}

func (f *fakePageRepo) DeleteComponent(ctx context.Context, subjectID, componentID string) error {
	delete(f.components[subjectID], componentID)
	delete(f.docs[subjectID], componentID)
	return nil
}

func (f *fakePageRepo) SetComponentOrder(ctx context.Context, subjectID, componentID string, newOrder int, now string) error {
	c, ok := f.components[subjectID][componentID]
	if !ok {
		return apperrors.NewNotFoundError("component")
	}
	switch v := c.(type) {
	case *domain.BioComponent:
		v.OrderValue = newOrder
		v.UpdatedAt = now
	case *domain.TextComponent:
		v.OrderValue = newOrder
		v.UpdatedAt = now
	}
	f.docs[subjectID][componentID]["order"] = newOrder
	f.docs[subjectID][componentID]["updatedAt"] = now
	return nil
}

func (f *fakePageRepo) GetComponentDoc(ctx context.Context, subjectID, componentID string) (map[string]interface{}, domain.ComponentType, error) {
	doc, ok := f.docs[subjectID][componentID]
	if !ok {
		return nil, "", apperrors.NewNotFoundError("component")
	}
	cp := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	return cp, f.components[subjectID][componentID].Type(), nil
}

func (f *fakePageRepo) UpdateComponentFields(ctx context.Context, subjectID, componentID string, updates map[string]interface{}, now string) error {
	doc, ok := f.docs[subjectID][componentID]
	if !ok {
		return apperrors.NewNotFoundError("component")
	}
	for k, v := range updates {
		doc[k] = v
	}
	doc["updatedAt"] = now

	if text, ok := f.components[subjectID][componentID].(*domain.TextComponent); ok {
		if v, ok := updates["text"].(string); ok {
			text.Text = v
		}
		if v, ok := updates["font"].(string); ok {
			text.Font = v
		}
		if v, ok := updates["backgroundColor"].(string); ok {
			text.BackgroundColorHex = v
		}
		text.UpdatedAt = now
	}
	return nil
}

func componentDoc(c domain.Component) map[string]interface{} {
	switch v := c.(type) {
	case *domain.TextComponent:
		return map[string]interface{}{
			"componentType":   string(domain.ComponentTypeText),
			"order":           v.Order(),
			"font":            v.Font,
			"backgroundColor": v.BackgroundColorHex,
			"text":            v.Text,
			"createdAt":       v.CreatedAt,
			"updatedAt":       v.UpdatedAt,
		}
	case *domain.BioComponent:
		return map[string]interface{}{
			"componentType":  string(domain.ComponentTypeBio),
			"order":          v.Order(),
			"username":       v.Username,
			"displayName":    v.DisplayName,
			"bio":            v.Bio,
			"followingCount": v.FollowingCount,
			"followerCount":  v.FollowerCount,
			"postCount":      v.PostCount,
			"createdAt":      v.CreatedAt,
			"updatedAt":      v.UpdatedAt,
		}
	default:
		return map[string]interface{}{}
	}
}

type fakePostRepo struct {
	posts map[string][]domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string][]domain.Post)}
}

func (f *fakePostRepo) List(ctx context.Context, subjectID string) ([]domain.Post, error) {
	posts := append([]domain.Post(nil), f.posts[subjectID]...)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAtRFC3339() > posts[j].CreatedAtRFC3339()
	})
	return posts, nil
}

func (f *fakePostRepo) Put(ctx context.Context, subjectID string, post domain.Post) error {
	f.posts[subjectID] = append(f.posts[subjectID], post)
	return nil
}

type fakeFollowRepo struct {
	edges map[string]map[string]*domain.FollowingEdge
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[string]map[string]*domain.FollowingEdge)}
}

func (f *fakeFollowRepo) IsFollowing(ctx context.Context, sourceID, targetID string) (bool, error) {
	_, ok := f.edges[sourceID][targetID]
	return ok, nil
}

func (f *fakeFollowRepo) ListFollowing(ctx context.Context, sourceID string) ([]*domain.FollowingEdge, error) {
	var edges []*domain.FollowingEdge
	for _, e := range f.edges[sourceID] {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].FollowingSub < edges[j].FollowingSub })
	return edges, nil
}

func (f *fakeFollowRepo) CreateFollow(ctx context.Context, sourceID, targetID string, following *domain.FollowingEdge, follower *domain.FollowerEdge) error {
	if _, ok := f.edges[sourceID][targetID]; ok {
		return apperrors.NewAlreadyFollowingError(targetID)
	}
	if f.edges[sourceID] == nil {
		f.edges[sourceID] = make(map[string]*domain.FollowingEdge)
	}
	f.edges[sourceID][targetID] = following
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(ctx context.Context, sourceID, targetID string) error {
	if _, ok := f.edges[sourceID][targetID]; !ok {
		return apperrors.NewNotFollowingError(targetID)
	}
	delete(f.edges[sourceID], targetID)
	return nil
}

type fakeBlobStore struct {
	lastKey         string
	lastContentType string
}

func (f *fakeBlobStore) IssueUploadURL(ctx context.Context, key, contentType string) (string, error) {
	f.lastKey = key
	f.lastContentType = contentType
	return "https://upload.example.com/" + key, nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

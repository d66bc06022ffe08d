package domain

import "github.com/google/uuid"

// provisionNamespace seeds the deterministic id of the bio component created
// during profile provisioning. A stable id per subject makes the bootstrap
// write an idempotent overwrite and gives the provisioner a fixed key to
// read back. Components created after provisioning get random v4 ids.
var provisionNamespace = uuid.MustParse("9f2c1a57-6b3e-4d48-9a11-51d0c7a6e2b4")

// BootstrapBioComponentID derives the provisioned bio component's id from
// the subject id (UUIDv5), the same for every retry of the bootstrap.
func BootstrapBioComponentID(subjectID string) string {
	return uuid.NewSHA1(provisionNamespace, []byte(subjectID)).String()
}

// NewBootstrapProfile builds the default profile written at first contact
func NewBootstrapProfile(identity Identity, now string) *Profile {
	return &Profile{
		SubjectID:   identity.SubjectID,
		Username:    identity.Username,
		DisplayName: identity.Username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewBootstrapBioComponent builds the bio component seeded onto every fresh
// page, snapshotting the just-created profile at order 0.
func NewBootstrapBioComponent(profile *Profile, now string) *BioComponent {
	bio := NewBioComponent(BootstrapBioComponentID(profile.SubjectID), 0, profile, now)
	return bio
}

package dynamodb

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"linkpage-backend/domain"
)

// Sort-key layout of the single table. Everything owned by a subject lives
// under PK "USER#<sub>"; the prefix of the sort key selects the entity kind.
const (
	pkUserPrefix = "USER#"

	skProfile = "PROFILE"
	skPage    = "PAGE#home"

	skPagePrefix      = "PAGE#"
	skComponentPrefix = "PAGE#COMPONENT#"
	skPostPrefix      = "POST#"
	skFollowingPrefix = "FOLLOWING#"
	skFollowerPrefix  = "FOLLOWER#"

	// GSI1 holds every profile under a constant partition so username
	// prefix search is a single index query.
	gsi1ProfilePK = "USER"
)

func ownerPK(subjectID string) string {
	return pkUserPrefix + subjectID
}

func componentSK(componentID string) string {
	return skComponentPrefix + componentID
}

func postSK(postID string) string {
	return skPostPrefix + postID
}

func followingSK(targetID string) string {
	return skFollowingPrefix + targetID
}

func followerSK(sourceID string) string {
	return skFollowerPrefix + sourceID
}

func subjectFromPK(pk string) string {
	return strings.TrimPrefix(pk, pkUserPrefix)
}

func componentIDFromSK(sk string) string {
	return strings.TrimPrefix(sk, skComponentPrefix)
}

func postIDFromSK(sk string) string {
	return strings.TrimPrefix(sk, skPostPrefix)
}

// bootstrapBioComponentID is the fixed key the provisioner batch-reads; the
// id derivation lives with the domain so services can build the component.
func bootstrapBioComponentID(subjectID string) string {
	return domain.BootstrapBioComponentID(subjectID)
}

// itemKey builds the two-part primary key attribute map
func itemKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

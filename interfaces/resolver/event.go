// Package resolver dispatches field-resolver events to the application
// services. This is the primary surface: the frontend talks GraphQL to the
// managed API, which invokes the resolver Lambda with the field name, the
// verified caller identity, and the field arguments.
package resolver

import "encoding/json"

// Event is the invocation payload delivered per resolved field
type Event struct {
	Info      EventInfo       `json:"info"`
	Identity  EventIdentity   `json:"identity"`
	Arguments json.RawMessage `json:"arguments"`
}

// EventInfo names the field being resolved
type EventInfo struct {
	FieldName string `json:"fieldName"`
}

// EventIdentity is the caller identity the API layer verified upstream
type EventIdentity struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

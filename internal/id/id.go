// Package id generates identifiers for entities owned by a group document.
//
// Groups and users use plain UUIDs. Sub-entities (expenses, debts, comments)
// use TypeIDs so an id is self-describing in logs and API payloads, e.g.
// "exp_01h2xcejqtf2nbrexx3vqjhp41".
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

const (
	PrefixExpense Prefix = "exp"
	PrefixDebt    Prefix = "debt"
	PrefixComment Prefix = "cmt"
)

// New generates a new TypeID string with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) string {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return tid.String()
}

// NewUUID returns a random UUID string for top-level documents.
func NewUUID() string {
	return uuid.New().String()
}

// HasPrefix reports whether s is a valid TypeID carrying the given prefix.
func HasPrefix(s string, prefix Prefix) bool {
	if !strings.HasPrefix(s, string(prefix)+"_") {
		return false
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return false
	}
	return tid.Prefix() == string(prefix)
}

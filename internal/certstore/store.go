// Package certstore reads certificates out of operating system and on-disk certificate stores.
package certstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

//go:generate mockgen -source=store.go -destination=../mocks/certstore.go -package=mocks

// Scope is a partition of certificate storage.
type Scope string

const (
	ScopeMachine Scope = "machine"
	ScopeUser    Scope = "user"
)

var (
	ErrUnknownScope  = errors.New("unknown store scope")
	ErrStoreNotFound = errors.New("certificate store not found")
	ErrEmptyName     = errors.New("certificate name is empty")
)

// ParseScope accepts the scope names used in configuration.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "machine", "local_machine", "localmachine":
		return ScopeMachine, nil
	case "user", "current_user", "currentuser":
		return ScopeUser, nil
	default:
		return "", errors.Wrapf(ErrUnknownScope, "%q", s)
	}
}

// Location names a store within a scope, e.g. machine/MY.
type Location struct {
	Scope Scope
	Name  string
}

func (l Location) String() string {
	return fmt.Sprintf("%s/%s", l.Scope, l.Name)
}

// Provider opens certificate stores.
type Provider interface {
	Open(loc Location) (Store, error)
}

// Store is an open certificate store. It must be closed once enumeration is done.
type Store interface {
	// Certificates enumerates every certificate in the store. On failure it returns the
	// certificates read before the error together with the error.
	Certificates() ([]Certificate, error)

	// Close releases the store handle.
	Close() error
}

// Certificate exposes the public metadata of a single store entry.
type Certificate interface {
	// NotAfter is the expiration instant.
	NotAfter() time.Time

	// DisplayName returns the simple display name of the subject, or of the issuer when
	// issuer is true.
	DisplayName(issuer bool) (string, error)
}

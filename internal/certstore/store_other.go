//go:build !windows

package certstore

import (
	"github.com/pkg/errors"
)

var errNoSystemStore = errors.New("system certificate stores are only available on windows, use the directory provider")

type systemProvider struct{}

// NewSystemProvider returns a Provider whose stores can never be opened on this platform.
// Collection over it yields no records.
func NewSystemProvider() Provider {
	return systemProvider{}
}

func (systemProvider) Open(loc Location) (Store, error) {
	return nil, errNoSystemStore
}

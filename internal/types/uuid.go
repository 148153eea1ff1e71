package types

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

const (
	UUID_PREFIX_ORGANIZATION = "org"
	UUID_PREFIX_USER         = "user"
	UUID_PREFIX_SUBSCRIPTION = "subs"
	UUID_PREFIX_ACCOUNT      = "acct"
	UUID_PREFIX_EVENT        = "event"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex subs_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// GenerateShortID returns a short, URL-safe token. Used for activation links.
func GenerateShortID() string {
	once.Do(func() {
		sidGenerator = shortid.MustNew(1, shortid.DefaultABC, rand.Uint64())
	})
	id, err := sidGenerator.Generate()
	if err != nil {
		return GenerateUUID()
	}
	return id
}

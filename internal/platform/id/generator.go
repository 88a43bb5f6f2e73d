package id

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/rs/xid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// XIDGenerator issues sortable 20 character ids.
type XIDGenerator struct{}

func NewXIDGenerator() *XIDGenerator {
	return &XIDGenerator{}
}

func (g *XIDGenerator) NewID() (string, error) {
	value := xid.New()
	if value.IsNil() {
		return "", crerr.New("generate xid: nil id")
	}

	return value.String(), nil
}

// Parse reports whether the value is a well formed xid.
func Parse(value string) (string, error) {
	parsed, err := xid.FromString(value)
	if err != nil {
		return "", crerr.Wrapf(err, "parse id %q", value)
	}

	return parsed.String(), nil
}

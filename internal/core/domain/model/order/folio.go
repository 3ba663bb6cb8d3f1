package order

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"repairshop/internal/pkg/errs"

	"github.com/google/uuid"
)

var folioPattern = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

// ErrFolioTaken is returned by repositories when a newly drawn folio is
// already stored on another order.
var ErrFolioTaken = errors.New("folio is already taken")

// Folio is the human-readable order reference printed on receipts, e.g. "ORD-9F86D081".
// It is distinct from the internal identifier.
type Folio string

// NewFolio draws four random bytes from a fresh v4 UUID.
func NewFolio() Folio {
	id := uuid.New()
	return Folio("ORD-" + strings.ToUpper(hex.EncodeToString(id[:4])))
}

// ParseFolio validates an externally supplied folio.
func ParseFolio(s string) (Folio, error) {
	f := Folio(strings.ToUpper(strings.TrimSpace(s)))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

func (f Folio) Validate() error {
	if !folioPattern.MatchString(string(f)) {
		return errs.NewValueIsInvalidErrorWithCause("folio", fmt.Errorf("%q does not match ORD-XXXXXXXX", string(f)))
	}
	return nil
}

func (f Folio) String() string {
	return string(f)
}

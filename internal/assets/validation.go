package assets

import (
	"fmt"
	"regexp"
)

// MaxAssetNameLength bounds template and style names.
const MaxAssetNameLength = 64

var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName accepts bare names made of letters, digits, '-' and '_'.
// Separators and dots are refused, so a name can neither leave the styles or
// templates directory nor pick its own extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	case !assetNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

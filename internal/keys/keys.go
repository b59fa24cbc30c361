// Package keys validates the two-part keys accepted by the table service.
package keys

import (
	"fmt"
	"strings"
	"unicode"
)

// disallowed lists the characters the service rejects in partition and
// row keys. Control characters are rejected separately.
const disallowed = `\#%+?/`

// Validate reports whether s is usable as a partition or row key.
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("key must be non-empty")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("key %q contains control character %U", s, r)
		}
		if strings.ContainsRune(disallowed, r) {
			return fmt.Errorf("key %q contains disallowed character %q", s, r)
		}
	}
	return nil
}

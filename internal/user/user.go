// Package user resolves who is running the command, used as the default
// owner of new cards.
package user

import (
	"os"
	osuser "os/user"
	"strings"
)

// Unknown is returned when no name can be found
const Unknown = "desconhecido"

// lookup is replaced in tests
var lookup = osuser.Current

// Name returns the person to assign cards to. FUNIL_USER wins, then the
// account's full name, then its login, then USER.
func Name() string {
	if name := strings.TrimSpace(os.Getenv("FUNIL_USER")); name != "" {
		return name
	}

	if u, err := lookup(); err == nil {
		// the GECOS field may carry extra comma-separated data
		if full, _, _ := strings.Cut(u.Name, ","); strings.TrimSpace(full) != "" {
			return strings.TrimSpace(full)
		}
		if u.Username != "" {
			return u.Username
		}
	}

	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return Unknown
}

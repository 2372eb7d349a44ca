// internal/core/usecases/announcer.go
package usecases

import (
	"fmt"
	"strings"

	"openhours/internal/core/domain"
)

// Announce builds the sentence spoken back to the user, e.g.
// "Commons Cafe is currently closed. However, it will reopen in 30 minutes."
// duration and hasDuration come from Formatter.Format on the result boundary.
func Announce(name string, result domain.StatusResult, duration string, hasDuration bool) string {
	var b strings.Builder

	state, verb := "closed", "reopen"
	if result.IsOpen {
		state, verb = "open", "close"
	}
	fmt.Fprintf(&b, "%s is currently %s.", name, state)

	switch {
	case hasDuration:
		fmt.Fprintf(&b, " However, it will %s in %s.", verb, duration)
	case !result.IsOpen:
		b.WriteString(" It will remain closed for the remainder of the day.")
	}

	return b.String()
}

// AnnounceUnavailable is the sentence used when no schedule could be read.
func AnnounceUnavailable(name string) string {
	return fmt.Sprintf("Sorry, I can't check %s right now. Please try again later.", name)
}

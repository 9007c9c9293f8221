package rules

import (
	"time"

	"github.com/amv-mods/mastereditor/automod"
)

// no reddit accounts exist before this time
var accountEpoch = time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC)

// returns true if the account creation timestamp is plausible: not zero,
// not in the distant past, not in the future
func plausibleAccountCreation(when time.Time) bool {
	if when.IsZero() {
		return false
	}
	// UNIX epoch zero means "unknown", not actually 1970
	if !when.After(accountEpoch) {
		return false
	}
	if when.After(time.Now().Add(time.Hour)) {
		return false
	}
	return true
}

// checks if the account was created recently. if the creation timestamp
// seems bogus, returns false (benefit of the doubt)
func accountIsYoungerThan(c *automod.SubmissionContext, age time.Duration) bool {
	if !plausibleAccountCreation(c.Account.CreatedAt) {
		return false
	}
	return time.Since(c.Account.CreatedAt) < age
}

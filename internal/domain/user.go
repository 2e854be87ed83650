package domain

import "time"

// User represents a registered account.
//
// Two flaws of the original system are preserved on purpose: the password is
// stored in plaintext, and the email is used case-sensitively as the lookup
// key, so accounts differing only in case coexist. A hardened variant would
// hash credentials and normalize the email before the uniqueness check.
type User struct {
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	OrderIDs  []string  `json:"order_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

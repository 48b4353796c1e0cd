// Package user reads the operating system account running faena
package user

import (
	"os"
	"os/user"
	"strings"
)

// DefaultName returns a display name for a new account: the OS account's
// full name, then its username, then $USER. Empty when none is known.
func DefaultName() string {
	current, err := user.Current()
	if err != nil {
		return strings.TrimSpace(os.Getenv("USER"))
	}
	return fullName(current)
}

// fullName drops the trailing GECOS fields some systems keep in Name
func fullName(u *user.User) string {
	name, _, _ := strings.Cut(u.Name, ",")
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return u.Username
}

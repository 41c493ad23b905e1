package account

import (
	"errors"
	"strings"
	"sync"

	"marketplace/internal/pkg/errs"
)

// Contact is the set of identity keys that must be unique across all users.
// Empty email or phone values are not reserved.
type Contact struct {
	Username string
	Email    string
	Phone    string
}

func (c Contact) normalized() Contact {
	return Contact{
		Username: normalizeUsername(c.Username),
		Email:    strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:    strings.TrimSpace(c.Phone),
	}
}

// Usernames are unique regardless of case.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Registry tracks which usernames, emails and phone numbers are in use.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	usernames map[string]struct{}
	emails    map[string]struct{}
	phones    map[string]struct{}
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reserve claims every key of c or none of them.
func (r *Registry) Reserve(c Contact) error {
	c = c.normalized()
	if c.Username == "" {
		return errs.NewValueIsRequiredError("username")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var taken []error
	if _, ok := r.usernames[c.Username]; ok {
		taken = append(taken, errs.NewObjectAlreadyExistsError("username", c.Username))
	}
	if _, ok := r.emails[c.Email]; ok && c.Email != "" {
		taken = append(taken, errs.NewObjectAlreadyExistsError("email", c.Email))
	}
	if _, ok := r.phones[c.Phone]; ok && c.Phone != "" {
		taken = append(taken, errs.NewObjectAlreadyExistsError("phone", c.Phone))
	}
	if len(taken) > 0 {
		return errors.Join(taken...)
	}

	r.usernames[c.Username] = struct{}{}
	if c.Email != "" {
		r.emails[c.Email] = struct{}{}
	}
	if c.Phone != "" {
		r.phones[c.Phone] = struct{}{}
	}
	return nil
}

// Release frees the keys of c. Unknown keys are ignored.
func (r *Registry) Release(c Contact) {
	c = c.normalized()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.usernames, c.Username)
	delete(r.emails, c.Email)
	delete(r.phones, c.Phone)
}

// IsUsernameTaken reports whether username is reserved.
func (r *Registry) IsUsernameTaken(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.usernames[normalizeUsername(username)]
	return ok
}

// Reset forgets every reservation.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.usernames = map[string]struct{}{}
	r.emails = map[string]struct{}{}
	r.phones = map[string]struct{}{}
}

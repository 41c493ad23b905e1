// Package account holds what every marketplace user has in common: a role and
// unique contact details.
//
// Roles form a closed set. Code that needs to act on a user's kind switches on
// Role rather than on the concrete entity type.
package account

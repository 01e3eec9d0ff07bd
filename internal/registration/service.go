// Package registration implements the signup workflow: validate the
// submission, verify the captcha token, enforce group/duplicate/capacity
// rules, then append the row to the store.
package registration

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardano2vn/group-signup/config"
	"github.com/cardano2vn/group-signup/internal/captcha"
	"github.com/cardano2vn/group-signup/internal/roster"
	"github.com/cardano2vn/group-signup/internal/storage"
	"github.com/cardano2vn/group-signup/models"
)

// Candidate is one submission as received from the form.
type Candidate struct {
	Name              string
	Email             string
	Phone             string
	School            string
	Group             string
	VerificationToken string
	RemoteIP          string
}

// Rejection is a validation failure with a message safe to show the
// visitor. Field names the offending field where one exists ("email",
// "phone", "group"); it is empty for whole-form failures.
type Rejection struct {
	Field   string
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(field, message string) *Rejection {
	return &Rejection{Field: field, Message: message}
}

// Service runs the registration workflow. All dependencies are injected
// once at startup; the service itself holds no mutable state.
type Service struct {
	store    storage.Store
	roster   *roster.Reader
	verifier captcha.Verifier
	cfg      *config.Config
}

func New(store storage.Store, r *roster.Reader, v captcha.Verifier, cfg *config.Config) *Service {
	return &Service{store: store, roster: r, verifier: v, cfg: cfg}
}

// Register validates the candidate and appends it to the store. It
// returns nil on success, a *Rejection for validation failures, and any
// other error for store/verifier outages.
//
// Steps run cheapest-first and short-circuit; the captcha check sits
// before the duplicate and capacity checks because those re-read the
// full table, the more expensive operation.
//
// The duplicate/capacity checks and the final append are not serialized
// against concurrent submissions: two requests can both pass the checks
// and both append. The window is accepted; the store offers no
// conditional write to close it with.
func (s *Service) Register(ctx context.Context, c Candidate) error {
	// 1. Required fields.
	if hasBlank(c.Name, c.Email, c.Phone, c.School, c.Group) {
		return reject("", "Please fill in all required fields")
	}

	// 2. Human verification. One fresh check per attempt, never cached.
	if s.cfg.RecaptchaSecretKey != "" && c.VerificationToken == "" {
		return reject("", "Captcha verification is required")
	}
	ok, err := s.verifier.Verify(ctx, c.VerificationToken, c.RemoteIP)
	if err != nil {
		return fmt.Errorf("registration: verify captcha: %w", err)
	}
	if !ok {
		return reject("", "Captcha verification failed, please try again")
	}

	// 3-4. Field formats.
	if !validEmail(c.Email) {
		return reject("email", "Invalid email address")
	}
	if !validPhone(c.Phone) {
		return reject("phone", "Invalid phone number")
	}

	// 5. Group membership.
	if !s.cfg.HasGroup(c.Group) {
		return reject("group", fmt.Sprintf("Group %q does not exist", c.Group))
	}

	// 6. Duplicates, against a fresh read of the full roster.
	students, err := s.roster.List(ctx)
	if err != nil {
		return err
	}
	email := NormalizeEmail(c.Email)
	phone := NormalizePhone(c.Phone)
	for _, existing := range students {
		if NormalizeEmail(existing.Email) == email {
			return reject("email", "This email is already registered")
		}
		if NormalizePhone(existing.Phone) == phone {
			return reject("phone", "This phone number is already registered")
		}
	}

	// 7. Capacity.
	full, err := s.roster.IsGroupFull(ctx, c.Group)
	if err != nil {
		return err
	}
	if full {
		return reject("group", fmt.Sprintf("Group %q is already full, please choose another group", c.Group))
	}

	// 8. Append.
	rec := models.Registration{
		Name:   strings.TrimSpace(c.Name),
		Email:  strings.TrimSpace(c.Email),
		Phone:  strings.TrimSpace(c.Phone),
		School: strings.TrimSpace(c.School),
		Group:  c.Group,
	}
	if err := s.store.Append(ctx, rec); err != nil {
		return fmt.Errorf("registration: append row: %w", err)
	}
	s.roster.Invalidate(ctx)
	return nil
}

func hasBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}

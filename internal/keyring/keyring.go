package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/focusflow/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored for a user
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownUser is returned for keyring users focusflow does not manage
	ErrUnknownUser = errors.New("unknown keyring entry")
)

// Users lists the keyring entries focusflow manages
var Users = []string{constants.KeyringRedisPassword, constants.KeyringPostgresDSN}

func checkUser(user string) error {
	for _, u := range Users {
		if u == user {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownUser, user)
}

// Get retrieves the secret stored for user.
// Returns ErrNotFound if nothing is stored.
func Get(user string) (string, error) {
	if err := checkUser(user); err != nil {
		return "", err
	}
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for user in the OS keyring.
func Set(user, secret string) error {
	if err := checkUser(user); err != nil {
		return err
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored for user.
func Delete(user string) error {
	if err := checkUser(user); err != nil {
		return err
	}
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// Lookup returns the secret for user, falling back to envVar when the
// keyring has no entry or cannot be reached. An empty result with a nil
// error means neither source has a value.
func Lookup(user, envVar string) (string, error) {
	secret, err := Get(user)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrKeyringUnavailable) {
		return "", err
	}
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}
	return "", nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

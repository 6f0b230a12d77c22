// Package cli implements the maintenance commands that run against the
// database file directly, without the HTTP server.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/fitlog/internal/db"
	"github.com/terraincognita07/fitlog/internal/models"
	"github.com/terraincognita07/fitlog/internal/security"
	"github.com/terraincognita07/fitlog/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the user's password with a generated one
// and forces a change on next sign-in.
func RunResetPasswordCommand(database *gorm.DB, email string, out io.Writer) error {
	users := db.NewUserRepository(database)
	user, err := findUserByEmail(users, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := storePassword(users, user.ID, temporaryPassword, true); err != nil {
		return err
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "The user must choose a new password on next sign-in.")
	return nil
}

// RunSetPasswordCommand sets a password typed by the operator. No change is
// forced afterwards.
func RunSetPasswordCommand(database *gorm.DB, email string, read PasswordReader, out io.Writer) error {
	users := db.NewUserRepository(database)
	user, err := findUserByEmail(users, email)
	if err != nil {
		return err
	}

	password, err := promptNewPassword(read, out)
	if err != nil {
		return err
	}
	if err := storePassword(users, user.ID, password, false); err != nil {
		return err
	}

	fmt.Fprintf(out, "Password updated for %s\n", user.Email)
	return nil
}

func findUserByEmail(users *db.UserRepository, raw string) (models.User, error) {
	email := services.NormalizeAuthEmail(raw)
	if email == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", raw)
	}

	user, err := users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user %s not found", email)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func storePassword(users *db.UserRepository, userID uint, password string, mustChange bool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(userID, string(hash), mustChange); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountPasswordChangeInvalidInput = errors.New("account password change invalid input")
	ErrAccountPasswordMismatch           = errors.New("account password mismatch")
	ErrAccountInvalidCurrentPassword     = errors.New("account invalid current password")
	ErrAccountNewPasswordMustDiffer      = errors.New("account new password must differ")
	ErrAccountWeakPassword               = errors.New("account weak password")
	ErrAccountPasswordMissing            = errors.New("account password missing")
	ErrAccountPasswordInvalid            = errors.New("account password invalid")
	ErrAccountUpdateFailed               = errors.New("account update failed")
	ErrAccountDeleteFailed               = errors.New("account delete failed")
)

type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AccountUserRepository interface {
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AccountService struct {
	users AccountUserRepository
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users}
}

func ValidatePasswordChange(passwordHash string, input PasswordChangeInput) error {
	current := strings.TrimSpace(input.CurrentPassword)
	next := strings.TrimSpace(input.NewPassword)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	if current == "" || next == "" || confirm == "" {
		return ErrAccountPasswordChangeInvalidInput
	}
	if next != confirm {
		return ErrAccountPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(current)) != nil {
		return ErrAccountInvalidCurrentPassword
	}
	if current == next {
		return ErrAccountNewPasswordMustDiffer
	}
	if err := ValidatePasswordStrength(next); err != nil {
		return ErrAccountWeakPassword
	}
	return nil
}

// ChangePassword also clears a pending forced change.
func (service *AccountService) ChangePassword(userID uint, passwordHash string, input PasswordChangeInput) error {
	if err := ValidatePasswordChange(passwordHash, input); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(input.NewPassword)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccountUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(hash), false); err != nil {
		return fmt.Errorf("%w: %w", ErrAccountUpdateFailed, err)
	}
	return nil
}

func ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrAccountPasswordInvalid
	}
	return nil
}

func (service *AccountService) DeleteAccount(userID uint, passwordHash string, rawPassword string) error {
	if err := ValidateDeleteAccountPassword(passwordHash, rawPassword); err != nil {
		return err
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %w", ErrAccountDeleteFailed, err)
	}
	return nil
}

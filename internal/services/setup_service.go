package services

import "fmt"

type SetupUserRepository interface {
	CountUsers() (int64, error)
}

type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

// RequiresInitialSetup reports whether no account has been registered yet.
func (service *SetupService) RequiresInitialSetup() (bool, error) {
	usersCount, err := service.users.CountUsers()
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return usersCount == 0, nil
}

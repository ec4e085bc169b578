package handlers

import (
	"github.com/Kabachel/FeedingKittiesBot/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService     interfaces.UserServiceInterface
	RegistrationSvc interfaces.RegistrationServiceInterface
	FeedingSvc      interfaces.FeedingServiceInterface
}

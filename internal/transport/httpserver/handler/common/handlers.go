package common

import (
	validator "github.com/go-playground/validator/v10"

	"pocketcart/internal/config"
	userdomain "pocketcart/internal/domain/user"
	"pocketcart/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	auth     config.AuthConfig
	validate *validator.Validate
	log      logger.Logger
}

func New(users *userdomain.Service, auth config.AuthConfig, validate *validator.Validate, log logger.Logger) *Handlers {
	if validate == nil {
		validate = validator.New()
	}
	return &Handlers{
		Users:    users,
		auth:     auth,
		validate: validate,
		log:      logger.OrNop(log),
	}
}

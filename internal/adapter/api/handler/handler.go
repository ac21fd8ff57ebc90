package handler

import (
	"ecotrack/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	badgeHandler     *BadgeHandler
	ecoActionHandler *EcoActionHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	badgeUseCase *usecase.BadgeUseCase,
	ecoActionUseCase *usecase.EcoActionUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	badgeHandler = NewBadgeHandler(badgeUseCase)
	ecoActionHandler = NewEcoActionHandler(ecoActionUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetBadgeHandler() *BadgeHandler {
	return badgeHandler
}

func GetEcoActionHandler() *EcoActionHandler {
	return ecoActionHandler
}

package handler

import "github.com/skillsling/marketplace/internal/core/domain"

type signupRequest struct {
	Roles    []string `json:"roles" validate:"max=2,dive,max=32"`
	Name     string   `json:"name" validate:"max=120"`
	Email    string   `json:"email" validate:"max=254"`
	Password string   `json:"password" validate:"max=128"`
}

type signupDetailsRequest struct {
	Services []string `json:"services" validate:"max=16,dive,max=64"`
	Bio      string   `json:"bio" validate:"max=2000"`
	Price    string   `json:"price" validate:"max=64"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=128"`
}

// signupStepResponse is returned while a signup is still in progress.
type signupStepResponse struct {
	Step  domain.SignupStep  `json:"step"`
	Draft *domain.SignupForm `json:"draft"`
}

// authScreenData is the payload of the auth screen.
type authScreenData struct {
	Draft    *domain.SignupForm `json:"draft"`
	Services []string           `json:"services"`
}

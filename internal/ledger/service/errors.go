package service

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid_token")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidSignup     = errors.New("invalid_signup")
	ErrUserDoesntExist   = errors.New("user_doesnt_exist")
	ErrUserAlreadyExists = errors.New("user_already_exists")
	ErrWrongCredentials  = errors.New("wrong_credentials")

	ErrCategoryDoesNotExist = errors.New("category_does_not_exist")
	ErrCurrencyDoesNotExist = errors.New("currency_does_not_exist")
	ErrExpenseDoesNotExist  = errors.New("expense_does_not_exist")
)

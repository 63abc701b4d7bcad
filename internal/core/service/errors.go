package service

import "errors"

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInsufficientCash = errors.New("insufficient cash")
	ErrSessionNotFound  = errors.New("session not found")
)

package errors

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid checkout request")
	ErrPodcastNotFound   = errors.New("podcast not found")
	ErrAlreadyPurchased  = errors.New("podcast already purchased")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrPaymentNotSettled = errors.New("payment not settled")
)

package domain

import "errors"

// Domain errors.
var (
	ErrInvalidConfiguration = errors.New("configuration invalide: aucun offset de rappel utilisable")
	ErrMalformedEvent       = errors.New("événement mal formé")
	ErrBirthdateFormat      = errors.New("format de date invalide (attendu MM/JJ/AAAA)")
	ErrBirthdateInFuture    = errors.New("la date de naissance est dans le futur")
)

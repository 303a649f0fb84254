package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNoRecipe = errors.New("no recipe loaded")
	ErrParse    = errors.New("could not parse recipe payload")
)

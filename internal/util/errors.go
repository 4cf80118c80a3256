package util

import "errors"

var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrSessionNotFound     = errors.New("quiz session not found or expired")
	ErrLandingPageNotFound = errors.New("landing page not found")
	ErrCommunityNotFound   = errors.New("community not found")
)

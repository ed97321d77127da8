package models

import "errors"

var (
	ErrRankNotFound      = errors.New("identity not found on leaderboard")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNoData            = errors.New("no rank samples found")
)

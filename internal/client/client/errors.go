package client

import (
	"errors"

	"github.com/dmitrijs2005/siteadmin/internal/common"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = common.ErrorNotFound
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
	// ErrRejected is a 2xx response whose envelope reports success=false.
	ErrRejected           = errors.New("request rejected")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

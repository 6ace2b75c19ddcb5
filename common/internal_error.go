package common

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/skyzh/tikv/errors"
)

func LogInternalError(err error) errors.CoprError {
	id, err2 := uuid.NewRandom()
	var errRef string
	if err2 != nil {
		log.Errorf("failed to generate uuid %v", err2)
		errRef = ""
	} else {
		errRef = id.String()
	}
	// For internal errors we don't return internal error messages to the caller as this
	// would leak engine implementation details. Instead, we generate a random UUID and
	// add that to the message and log the internal error in the server logs with the
	// UUID so it can be looked up
	cerr := errors.NewInternalError(errRef)
	log.Errorf("internal error occurred with reference %s\n%+v", errRef, err)
	return cerr
}

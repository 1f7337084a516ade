package usecase

import (
	"errors"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"
)

func requireSignedIn(session domain.Session) error {
	if !session.SignedIn() {
		return apperror.Unauthorized("Sign in required")
	}
	return nil
}

func requireSeeker(session domain.Session) error {
	if !session.SignedIn() {
		return apperror.Unauthorized("Sign in required")
	}
	if !session.IsSeeker() {
		return apperror.Forbidden("Only job seekers can do this")
	}
	return nil
}

func requireProvider(session domain.Session) error {
	if !session.SignedIn() {
		return apperror.Unauthorized("Sign in required")
	}
	if !session.IsProvider() {
		return apperror.Forbidden("Only job providers can do this")
	}
	return nil
}

// requireOwner checks the provider posted the job.
func requireOwner(session domain.Session, job *domain.Job) error {
	if job.PostedBy != session.UserID() {
		return apperror.Forbidden("You can only manage your own jobs")
	}
	return nil
}

// lookupError turns a remote 404 into a user-facing not-found error and
// passes everything else through.
func lookupError(err error, what string) error {
	if apperror.KindOf(err) == apperror.KindNotFound {
		return apperror.NotFound(what + " not found")
	}
	return err
}

// transitionError maps a domain guard failure onto the HTTP taxonomy.
func transitionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrJobClosed):
		return apperror.Conflict("Job is closed")
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperror.Conflict("Not allowed in the current application state")
	case errors.Is(err, domain.ErrInvalidRating):
		return apperror.BadRequest("Rating must be between 1 and 5")
	}
	return err
}

// logSwallowed records a read failure that the page renders as empty.
func logSwallowed(op string, err error) {
	logger.Log.Warn("Read failed, rendering empty result",
		"op", op,
		"kind", apperror.KindOf(err),
		"error", err,
	)
}

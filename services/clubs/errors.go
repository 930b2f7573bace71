package clubs

import "coffeehouse/api"

type FailureToGetClubsError struct {
	Err error
}

func (e *FailureToGetClubsError) Error() string {
	if e.Err == nil {
		return "failed to get clubs"
	}
	return "failed to get clubs: " + e.Err.Error()
}

func (e *FailureToGetClubsError) Unwrap() error { return e.Err }

// FailureToCreateClubError carries the club that was rejected.
type FailureToCreateClubError struct {
	Club api.Club
	Err  error
}

func (e *FailureToCreateClubError) Error() string {
	msg := "failed to create club"
	if e.Club.Name != "" {
		msg += " " + e.Club.Name
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FailureToCreateClubError) Unwrap() error { return e.Err }

type FailureToUpdateClubError struct {
	Err error
}

func (e *FailureToUpdateClubError) Error() string {
	if e.Err == nil {
		return "failed to update club"
	}
	return "failed to update club: " + e.Err.Error()
}

func (e *FailureToUpdateClubError) Unwrap() error { return e.Err }

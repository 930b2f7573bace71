package profile

type NonExistentProfileError struct {
	Err error
}

func (e *NonExistentProfileError) Error() string {
	if e.Err == nil {
		return "profile does not exist"
	}
	return "profile does not exist: " + e.Err.Error()
}

func (e *NonExistentProfileError) Unwrap() error { return e.Err }

type FailureToUpdateProfileError struct {
	Err error
}

func (e *FailureToUpdateProfileError) Error() string {
	if e.Err == nil {
		return "failed to update profile"
	}
	return "failed to update profile: " + e.Err.Error()
}

func (e *FailureToUpdateProfileError) Unwrap() error { return e.Err }

type FailureToCreatePersonError struct {
	Err error
}

func (e *FailureToCreatePersonError) Error() string {
	if e.Err == nil {
		return "failed to create person"
	}
	return "failed to create person: " + e.Err.Error()
}

func (e *FailureToCreatePersonError) Unwrap() error { return e.Err }

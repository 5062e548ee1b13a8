package services

// Service errors
var (
	ErrGameAlreadyStarted = &ServiceError{Code: "GAME_ALREADY_STARTED", Message: "game has already started"}
	ErrNameTaken          = &ServiceError{Code: "NAME_TAKEN", Message: "name already taken"}
	ErrAlreadyVoted       = &ServiceError{Code: "ALREADY_VOTED", Message: "already voted in this round"}
	ErrNotOwner           = &ServiceError{Code: "NOT_OWNER", Message: "game is owned by another admin"}
	ErrRoundChanged       = &ServiceError{Code: "ROUND_CHANGED", Message: "the round changed while submitting"}
)

// ServiceError represents a service-level error with a stable code the
// API layer maps to a response without matching on message text
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

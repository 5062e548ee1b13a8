package services_test

import (
	"testing"

	"github.com/siddug/sag/internal/services"
)

func TestServiceError_Error(t *testing.T) {
	err := &services.ServiceError{Code: "TEST_CODE", Message: "something went wrong"}
	if err.Error() != "something went wrong" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestServiceError_StableCodes(t *testing.T) {
	// Clients match on these codes; changing one is a breaking API change.
	codes := map[*services.ServiceError]string{
		services.ErrGameAlreadyStarted: "GAME_ALREADY_STARTED",
		services.ErrNameTaken:          "NAME_TAKEN",
		services.ErrAlreadyVoted:       "ALREADY_VOTED",
		services.ErrNotOwner:           "NOT_OWNER",
		services.ErrRoundChanged:       "ROUND_CHANGED",
	}
	for err, want := range codes {
		if err.Code != want {
			t.Errorf("code = %q, want %q", err.Code, want)
		}
	}
}

package http

import (
	"unicode/utf8"

	"github.com/MKhiriev/go-task-tracker/models"
)

// Bounds mirror what the durable schema enforces; validating here keeps
// malformed payloads from ever reaching the store.
const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 6
	passwordMaxLen = 30
	taskNameMaxLen = 255
)

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return ErrValidationUsername
	}
	return nil
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < passwordMinLen || n > passwordMaxLen {
		return ErrValidationPassword
	}
	return nil
}

func validateTaskName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > taskNameMaxLen {
		return ErrValidationTaskName
	}
	return nil
}

// validateStage accepts the empty string so the service can apply the
// default stage on creation.
func validateStage(stage models.TaskStage) error {
	if stage != "" && !stage.Valid() {
		return ErrValidationStage
	}
	return nil
}

package services

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
)

// Field limits, counted in characters.
const (
	UserNameMin           = 2
	UserNameMax           = 80
	PasswordMin           = 8
	PasswordMax           = 30
	ProjectNameMin        = 5
	ProjectNameMax        = 80
	ProjectDescriptionMax = 500
	TaskTitleMin          = 5
	TaskTitleMax          = 120
	TaskDescriptionMax    = 1000
)

// bcrypt rejects longer inputs
const passwordMaxBytes = 72

func checkLength(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return validationError("%s must be at least %d characters", field, minLen)
	}
	if n > maxLen {
		return validationError("%s must be at most %d characters", field, maxLen)
	}
	return nil
}

func validateUserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	return name, checkLength("name", name, UserNameMin, UserNameMax)
}

func validateEmail(email string) (string, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return "", validationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("email is not a valid address")
	}
	return email, nil
}

func validatePassword(password string) error {
	if err := checkLength("password", password, PasswordMin, PasswordMax); err != nil {
		return err
	}
	if len(password) > passwordMaxBytes {
		return validationError("password must be at most %d bytes", passwordMaxBytes)
	}
	return nil
}

func validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	return name, checkLength("name", name, ProjectNameMin, ProjectNameMax)
}

func validateProjectDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	return desc, checkLength("description", desc, 0, ProjectDescriptionMax)
}

func validateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	return title, checkLength("title", title, TaskTitleMin, TaskTitleMax)
}

func validateTaskDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	return desc, checkLength("description", desc, 0, TaskDescriptionMax)
}

func validateTaskStatus(status string) error {
	if !models.IsValidTaskStatus(status) {
		return validationError("status must be one of %s", strings.Join(models.TaskStatuses, ", "))
	}
	return nil
}

func validateTaskPriority(priority string) error {
	if !models.IsValidTaskPriority(priority) {
		return validationError(
			"priority must be one of %s",
			strings.Join(models.TaskPriorities, ", "),
		)
	}
	return nil
}

func validatePosition(position int) error {
	if position < 0 {
		return validationError("position must not be negative")
	}
	return nil
}

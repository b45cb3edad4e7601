package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-blog/internal/models"
)

const (
	usernameMinLen    = 3
	usernameMaxLen    = 30
	passwordMinLen    = 8
	passwordMaxLen    = 72 // bcrypt ignores input past 72 bytes
	titleMinLen       = 3
	titleMaxLen       = 200
	descriptionMinLen = 10
	descriptionMaxLen = 500
	contentMinLen     = 50
	emailMaxLen       = 255 // users.email column width
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func length(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func validateRegistration(username, email, password, confirmPassword string) error {
	errs := fieldErrors{}

	switch n := length(username); {
	case n < usernameMinLen:
		errs["username"] = "Username must be at least 3 characters"
	case n > usernameMaxLen:
		errs["username"] = "Username must not exceed 30 characters"
	}

	switch email = strings.TrimSpace(email); {
	case len(email) > emailMaxLen:
		errs["email"] = "Email must not exceed 255 characters"
	case !emailPattern.MatchString(email):
		errs["email"] = "Please enter a valid email"
	}

	switch {
	case len(password) < passwordMinLen:
		errs["password"] = "Password must be at least 8 characters"
	case len(password) > passwordMaxLen:
		errs["password"] = "Password must not exceed 72 bytes"
	}

	if password != confirmPassword {
		errs["confirmPassword"] = "Passwords don't match"
	}

	return errs.err()
}

func validateLogin(login, password string) error {
	errs := fieldErrors{}
	if strings.TrimSpace(login) == "" {
		errs["username"] = "Username is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs.err()
}

func checkTitle(errs fieldErrors, title string) {
	switch n := length(title); {
	case n < titleMinLen:
		errs["title"] = "Title must be at least 3 characters long"
	case n > titleMaxLen:
		errs["title"] = "Title must not exceed 200 characters"
	}
}

func checkDescription(errs fieldErrors, description string) {
	switch n := length(description); {
	case n < descriptionMinLen:
		errs["description"] = "Description must be at least 10 characters long"
	case n > descriptionMaxLen:
		errs["description"] = "Description must not exceed 500 characters"
	}
}

func checkContent(errs fieldErrors, content string) {
	if length(content) < contentMinLen {
		errs["content"] = "Content must be at least 50 characters long"
	}
}

func validatePost(title, description, content string) error {
	errs := fieldErrors{}
	checkTitle(errs, title)
	checkDescription(errs, description)
	checkContent(errs, content)
	return errs.err()
}

// validatePatch checks only the fields present in the patch.
func validatePatch(patch models.PostPatch) error {
	errs := fieldErrors{}
	if patch.Empty() {
		errs["body"] = "At least one of title, description or content is required"
		return errs.err()
	}
	if patch.Title != nil {
		checkTitle(errs, *patch.Title)
	}
	if patch.Description != nil {
		checkDescription(errs, *patch.Description)
	}
	if patch.Content != nil {
		checkContent(errs, *patch.Content)
	}
	return errs.err()
}

// trimPatch returns a copy of patch with surrounding whitespace removed.
func trimPatch(patch models.PostPatch) models.PostPatch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return models.PostPatch{
		Title:       trim(patch.Title),
		Description: trim(patch.Description),
		Content:     trim(patch.Content),
	}
}

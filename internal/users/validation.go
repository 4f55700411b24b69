package users

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameRunes     = 2
	minLocationRunes = 3
	maxBioRunes      = 200
)

var (
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")
	phonePattern = regexp.MustCompile(`^(\+\d{1,3}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
)

// FieldError is one rejected field with a user-facing message.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every rejected field of an update.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// Normalize trims every field.
func (u Update) Normalize() Update {
	return Update{
		Name:     strings.TrimSpace(u.Name),
		Email:    strings.TrimSpace(u.Email),
		Phone:    strings.TrimSpace(u.Phone),
		Location: strings.TrimSpace(u.Location),
		Bio:      strings.TrimSpace(u.Bio),
	}
}

// Validate checks a normalized update and returns nil or a *ValidationError.
func (u Update) Validate() error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	switch {
	case u.Name == "":
		add("name", "Name is required")
	case utf8.RuneCountInString(u.Name) < minNameRunes:
		add("name", "Name should be at least 2 characters long")
	}
	switch {
	case u.Email == "":
		add("email", "Email is required")
	case !emailPattern.MatchString(u.Email):
		add("email", "Please enter a valid email address")
	}
	if u.Phone != "" && !phonePattern.MatchString(u.Phone) {
		add("phone", "Please enter a valid phone number (e.g., +1 123-456-7890)")
	}
	if u.Location != "" && utf8.RuneCountInString(u.Location) < minLocationRunes {
		add("location", "Location should be at least 3 characters long")
	}
	if utf8.RuneCountInString(u.Bio) > maxBioRunes {
		add("bio", "Bio should not exceed 200 characters")
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

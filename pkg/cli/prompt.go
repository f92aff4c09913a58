package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

func required(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

// promptCredentials asks for whichever of email and password is empty.
func promptCredentials(email, password *string) error {
	if *email != "" && *password != "" {
		return nil
	}
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("name@example.com").
			Value(email).
			Validate(required("email")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(required("password")))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// promptNames asks for first and last name when both are empty.
func promptNames(first, last *string) error {
	if *first != "" || *last != "" {
		return nil
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(first).
				Validate(required("first name")),
			huh.NewInput().
				Title("Last name").
				Value(last).
				Validate(required("last name")),
		),
	).Run()
}

package schema

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// listTitleAlphabet keeps provisioned list titles URL-safe without escaping.
const listTitleAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewRunID generates a run ID in format RUN-{nanoid(10)}.
func NewRunID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RUN-%s", id), nil
}

// NewOutcomeID generates an outcome event ID in format EVT-{nanoid(10)}.
func NewOutcomeID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EVT-%s", id), nil
}

// NewListTitle generates a list title in format {template}_{nanoid(8)}.
func NewListTitle(template ListTemplate) (string, error) {
	id, err := gonanoid.Generate(listTitleAlphabet, 8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", template, id), nil
}

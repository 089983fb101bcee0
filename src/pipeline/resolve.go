package pipeline

import "errors"

// ErrNoPathAvailable means neither an interactively chosen path nor a
// fallback path is set; the user has to pick a file.
var ErrNoPathAvailable = errors.New("no file path available")

// ResolvePath picks the active file path. An interactive choice (file
// browser) always wins over the fallback (command-line argument). Pure
// function of its inputs.
func ResolvePath(interactive, fallback string) (string, error) {
	if interactive != "" {
		return interactive, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoPathAvailable
}

package cli

import "fmt"

type notFoundError struct {
	kind string
	id   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id int) error {
	return notFoundError{kind: kind, id: id}
}

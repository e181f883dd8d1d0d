package users

import "errors"

var (
	// ErrValidation некорректные входные данные.
	ErrValidation = errors.New("validation error")
	// ErrConflict email уже занят активным пользователем.
	ErrConflict = errors.New("conflict")
	// ErrNotFound пользователь не найден.
	ErrNotFound = errors.New("not found")
)

// serviceError ошибка с сообщением для клиента и категорией для errors.Is.
type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func validationError(msg string) error {
	return &serviceError{kind: ErrValidation, msg: msg}
}

func conflictError(msg string) error {
	return &serviceError{kind: ErrConflict, msg: msg}
}

func notFoundError(msg string) error {
	return &serviceError{kind: ErrNotFound, msg: msg}
}

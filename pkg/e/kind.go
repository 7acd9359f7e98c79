package e

import (
	"errors"
	"fmt"
)

// Kind — категория ошибки предметной области.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindStorage
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	default:
		return ErrStorage
	}
}

// Error несёт категорию, тип сущности и идентификатор,
// достаточные для того, чтобы транспорт сформировал сообщение.
type Error struct {
	Kind   Kind
	Entity string // product, comment, image, similarity
	ID     string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Is позволяет сравнивать *Error с сентинелами ErrValidation, ErrNotFound и т.д.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation — некорректный идентификатор, отсутствующее поле, пустой обязательный список.
func Validation(entity, msg string) error {
	return &Error{Kind: KindValidation, Entity: entity, Msg: msg}
}

// NotFound — сущность не найдена или условный запрос не затронул ни одной строки.
func NotFound(entity, id, msg string) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Msg: msg}
}

// Conflict — дубликат, обнаруженный до вставки.
func Conflict(entity, id, msg string) error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Msg: msg}
}

// Storage пробрасывает ошибку хранилища без интерпретации.
func Storage(entity string, err error) error {
	if err == nil {
		return nil
	}

	var de *Error
	if errors.As(err, &de) {
		return err
	}

	return &Error{Kind: KindStorage, Entity: entity, Msg: "storage failure", Err: err}
}

// KindOf возвращает категорию ошибки, если она есть в цепочке.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}

	return 0, false
}

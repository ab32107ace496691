package errors

import "errors"

// Is - обертка над стандартным errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As - обертка над errors.As для *Error.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// GetCode извлекает код; чужие ошибки считаются INTERNAL.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMessage возвращает сообщение без кода и причины.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsOutOfBounds(err error) bool {
	return GetCode(err) == CodeOutOfBounds
}

func IsComponentMissing(err error) bool {
	return GetCode(err) == CodeComponentMissing
}

func IsSaveIntegrityFailure(err error) bool {
	return GetCode(err) == CodeSaveIntegrityFailure
}

func IsSaveIOFailure(err error) bool {
	return GetCode(err) == CodeSaveIOFailure
}

func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

package errors

// Code - машинно-читаемый класс ошибки ядра.
type Code string

const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInternal           Code = "INTERNAL"

	// Таксономия симуляции.
	CodeGenerationFailure    Code = "GENERATION_FAILURE"
	CodeOutOfBounds          Code = "OUT_OF_BOUNDS"
	CodeComponentMissing     Code = "COMPONENT_MISSING"
	CodePathfindingFailure   Code = "PATHFINDING_FAILURE"
	CodeSaveIntegrityFailure Code = "SAVE_INTEGRITY_FAILURE"
	CodeSaveIOFailure        Code = "SAVE_IO_FAILURE"
)

func (c Code) String() string {
	return string(c)
}

// Recoverable сообщает, восстанавливается ли ошибка внутри ядра
// детерминированным fallback'ом, не доходя до пользователя.
func (c Code) Recoverable() bool {
	switch c {
	case CodeOutOfBounds, CodeComponentMissing, CodePathfindingFailure, CodeGenerationFailure:
		return true
	default:
		return false
	}
}

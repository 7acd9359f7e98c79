package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки предметной области. Используются как метки для errors.Is.
	ErrValidation = fmt.Errorf("validation error")
	ErrNotFound   = fmt.Errorf("not found")
	ErrConflict   = fmt.Errorf("conflict")
	ErrStorage    = fmt.Errorf("storage error")

	// Ошибки маппинга строк БД
	ErrMalformedRow = fmt.Errorf("malformed row")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrExpectedJSON         = fmt.Errorf("expected application/json body")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// Загрузка файлов изображений не настроена (нет MinIO)
	ErrUploadsDisabled = fmt.Errorf("image uploads are disabled")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Maria-Yarosh/shop.project.SF/internal/infrastructure"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse переводит ошибку в HTTP-статус и текст для клиента.
// Ошибки предметной области отдают своё сообщение, остальные — общий текст.
func ToHTTPResponse(err error) (int, string) {
	var de *e.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case e.KindValidation:
			return http.StatusBadRequest, de.Error()
		case e.KindNotFound:
			return http.StatusNotFound, de.Error()
		case e.KindConflict:
			return http.StatusUnprocessableEntity, de.Error()
		default:
			return http.StatusInternalServerError, e.ErrInternalServerError.Error()
		}
	}

	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrExpectedJSON):
		return http.StatusBadRequest, e.ErrExpectedJSON.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrTooManyImages):
		return http.StatusBadRequest, e.ErrTooManyImages.Error()
	case errors.Is(err, e.ErrNoImages):
		return http.StatusBadRequest, e.ErrNoImages.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrUploadsDisabled):
		return http.StatusServiceUnavailable, e.ErrUploadsDisabled.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteSuccess(w, status, &MessageResponse{Message: msg})
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// В сообщениях об ошибках — имена полей из JSON
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})

	return validate
}

// validateStruct проверяет DTO по тегам validate и возвращает ошибку валидации
// с описанием первого неверного поля.
func validateStruct(entity string, s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return e.Validation(entity, err.Error())
	}

	return e.Validation(entity, fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(`Field "%s" is absent`, field)
	case "uuid":
		return fmt.Sprintf(`Field "%s" is not UUID`, field)
	case "email":
		return fmt.Sprintf(`Field "%s" is not a valid email`, field)
	case "min":
		return fmt.Sprintf(`Field "%s" is empty or malformed`, field)
	default:
		return fmt.Sprintf(`Field "%s" failed on "%s"`, field, fe.Tag())
	}
}

// decodeJSON читает тело запроса в dst; пустое или битое тело — 400.
func decodeJSON(r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedJSON)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrExpectedJSON)
	}

	return nil
}

// checkPrice отклоняет отрицательные цены и цены с более чем 2 знаками после запятой.
func checkPrice(d decimal.Decimal) error {
	if d.IsNegative() {
		return e.ErrInvalidPrice
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return e.ErrPricePrecision
	}

	return nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImages(files []*multipart.FileHeader, maxCount int, maxFileSize int64) ([]usecase.ProductImage, error) {
	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if maxCount > 0 && len(files) > maxCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	if !infrastructure.IsSupportedImage(mimeType) {
		return nil, "", e.Wrap(fh.Filename, e.ErrUnsupportedMediaType)
	}

	return data, mimeType, nil
}

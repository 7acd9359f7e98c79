package infrastructure

import "github.com/Maria-Yarosh/shop.project.SF/pkg/e"

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, jpg, png, webp. Возвращает ошибку e.ErrUnsupportedMediaType для неподдерживаемых типов.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}

// IsSupportedImage сообщает, принимает ли сервис изображения этого MIME-типа.
func IsSupportedImage(mime string) bool {
	_, err := GetExtensionFromMIME(mime)
	return err == nil
}

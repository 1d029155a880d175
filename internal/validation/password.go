package validation

import "fmt"

// bcrypt учитывает только первые 72 байта пароля.
const MaxPasswordBytes = 72

// ValidatePassword проверяет пароль перед хэшированием bcrypt.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("пароль не может быть пустым")
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("пароль длиннее %d байт", MaxPasswordBytes)
	}
	return nil
}

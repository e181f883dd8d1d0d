// Package password реализует хеширование паролей для хранения.
//
// Hash генерирует случайную соль и вычисляет PBKDF2-SHA512 хэш пароля.
// Derive выполняет детерминированную часть вычисления для уже известной соли.
//
// Число итераций (1000) сильно ниже современных рекомендаций и сохранено
// для совместимости с уже сохранёнными хэшами.
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize размер соли в байтах до hex-кодирования.
	SaltSize = 16
	// Iterations число итераций PBKDF2.
	Iterations = 1000
	// KeyLength длина хэша в байтах до hex-кодирования.
	KeyLength = 64
)

// Hash принимает пароль пользователя и возвращает hex-хэш и hex-соль.
func Hash(password string) (hash string, salt string, err error) {
	const op = "password.Hash"

	raw := make([]byte, SaltSize)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	salt = hex.EncodeToString(raw)

	return Derive(password, salt), salt, nil
}

// Derive вычисляет hex-хэш пароля для переданной hex-соли.
// В качестве соли в PBKDF2 передаются байты hex-строки.
func Derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha512.New)
	return hex.EncodeToString(key)
}

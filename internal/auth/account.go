// Package auth реализует шлюз аутентификации. Он проверяет Basic-учётки и Bearer-токены
// и кладёт в контекст запроса model.Principal. Сервисный слой паролей не видит.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"user-directory-service/internal/model"
)

// Account описывает учётную запись для входа: логин, bcrypt-хеш пароля,
// id связанной записи пользователя и роли.
type Account struct {
	Login        string   `json:"login"`
	PasswordHash string   `json:"password_hash"`
	UserID       string   `json:"user_id"`
	Roles        []string `json:"roles"`
}

// Principal строит принципала по учётке. Без user_id идентификатором служит логин.
func (a Account) Principal() model.Principal {
	id := a.UserID
	if id == "" {
		id = a.Login
	}
	roles := make([]string, len(a.Roles))
	copy(roles, a.Roles)
	return model.Principal{ID: id, Roles: roles}
}

// LoadAccounts читает учётки из JSON-файла (массив). Отсутствующий файл даёт пустой список.
func LoadAccounts(path string) ([]Account, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts file %s: %w", path, err)
	}

	for i, a := range accounts {
		if strings.TrimSpace(a.Login) == "" {
			return nil, fmt.Errorf("accounts[%d].login is required", i)
		}
		if a.PasswordHash == "" {
			return nil, fmt.Errorf("accounts[%d].password_hash is required", i)
		}
	}
	return accounts, nil
}

// HashPassword возвращает bcrypt-хеш пароля для файла учёток.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// dummyHash сравнивается с паролем неизвестного логина, чтобы время ответа
// не выдавало, какие логины существуют.
var dummyHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("user-directory-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("generate dummy hash: %v", err))
	}
	return string(hash)
})

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Package model содержит доменные структуры справочника пользователей.
package model

// User описывает запись пользователя: идентификатор, email и имя.
// Идентификатор это десятичное число в виде строки, после назначения не меняется.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Collection хранит всю коллекцию пользователей, которую читают и пишут целиком.
// LastID хранит последний выданный идентификатор, чтобы удалённые id не выдавались повторно.
type Collection struct {
	Users  []User
	LastID int64
}

// IndexOf возвращает позицию пользователя с указанным id или -1.
func (c Collection) IndexOf(id string) int {
	for i, u := range c.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// CreateUserInput содержит данные для создания пользователя.
// DecodeErr хранит ошибку разбора тела запроса: её сообщают только после проверки роли.
type CreateUserInput struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	DecodeErr error  `json:"-"`
}

// UpdateUserInput содержит данные для частичного обновления пользователя.
// Email учитывается только в строгом режиме валидации.
// DecodeErr сообщается после проверки роли и поиска записи.
type UpdateUserInput struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	DecodeErr error  `json:"-"`
}

// UserChange описывает результат изменяющей операции, сообщение и актуальная запись.
type UserChange struct {
	Message string `json:"message"`
	User    User   `json:"data"`
}

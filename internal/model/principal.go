package model

const (
	// RoleAdmin даёт полный доступ к справочнику.
	RoleAdmin = "ADMIN"
	// RoleUser задаёт базовую роль аутентифицированного пользователя.
	RoleUser = "USER"
)

// Principal описывает вызывающую сторону, которую передаёт шлюз аутентификации:
// идентификатор и набор ролей. Пустой ID означает анонимный запрос.
type Principal struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// Anonymous сообщает, что запрос пришёл без аутентификации.
func (p Principal) Anonymous() bool {
	return p.ID == ""
}

// HasRole проверяет наличие роли. ADMIN включает в себя USER.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
		if r == RoleAdmin && role == RoleUser {
			return true
		}
	}
	return false
}

// LoginResult описывает ответ на вход: идентификатор, роли и выданный токен.
type LoginResult struct {
	User  string   `json:"user"`
	Roles []string `json:"roles"`
	Token string   `json:"token,omitempty"`
}

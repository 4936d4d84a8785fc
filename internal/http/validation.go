package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// maxBodyBytes ограничивает размер тела запроса.
const maxBodyBytes = 1 << 20

var errNullBody = errors.New("request body is null")

// decodeJSON разбирает тело запроса в dst. Пустое тело, синтаксическая ошибка,
// null, не-объект или поле не того типа дают ошибку. Её не отдают клиенту сразу:
// сервис сообщает о ней после проверки роли и поиска записи.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errNullBody
	}
	return json.Unmarshal(raw, dst)
}

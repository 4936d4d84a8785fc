package repository

import "errors"

var (
	// ErrStorageCorrupt возвращается, если содержимое хранилища не разбирается как массив пользователей.
	ErrStorageCorrupt = errors.New("storage content is corrupt")
)

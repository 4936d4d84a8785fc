package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"user-directory-service/internal/model"
)

// DefaultUsersFile задаёт путь к файлу пользователей относительно рабочего каталога сервиса.
const DefaultUsersFile = "var/users.json"

// FileStore хранит коллекцию пользователей в одном JSON-файле (массив объектов).
// Счётчик идентификаторов лежит рядом, в файле <path>.seq.
// Синхронизацией доступа занимается LockManager, сам FileStore состояния не держит.
type FileStore struct {
	path string
}

// NewFileStore создаёт хранилище поверх файла path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultUsersFile
	}
	return &FileStore{path: path}
}

// Path возвращает путь к файлу с пользователями.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) seqPath() string {
	return s.path + ".seq"
}

// Load читает всю коллекцию. Отсутствующий или пустой файл даёт пустую коллекцию.
// Если содержимое не разбирается, возвращается ошибка, обёрнутая в ErrStorageCorrupt.
func (s *FileStore) Load(ctx context.Context) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return model.Collection{}, err
	}

	coll := model.Collection{Users: make([]model.User, 0)}

	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return model.Collection{}, fmt.Errorf("read users file: %w", err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		var users []model.User
		if err := json.Unmarshal(data, &users); err != nil {
			return model.Collection{}, fmt.Errorf("%w: %s: %v", ErrStorageCorrupt, s.path, err)
		}
		if users != nil {
			coll.Users = users
		}
	}

	lastID, err := s.readSeq()
	if err != nil {
		return model.Collection{}, err
	}
	coll.LastID = max(lastID, maxNumericID(coll.Users))

	return coll, nil
}

// Save перезаписывает файл целиком. Запись идёт через временный файл и rename,
// поэтому читатель видит либо старое, либо новое содержимое.
func (s *FileStore) Save(ctx context.Context, coll model.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeUsers(coll.Users)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Сначала счётчик: если упадём между записями, при чтении возьмётся максимум.
	if err := writeFileAtomic(s.seqPath(), []byte(strconv.FormatInt(coll.LastID, 10))); err != nil {
		return fmt.Errorf("write seq file: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

func (s *FileStore) readSeq() (int64, error) {
	data, err := os.ReadFile(s.seqPath())
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read seq file: %w", err)
	}

	raw := string(bytes.TrimSpace(data))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrStorageCorrupt, s.seqPath(), err)
	}
	return n, nil
}

// EncodeUsers сериализует пользователей в формат хранилища: массив с отступом в 4 пробела.
func EncodeUsers(users []model.User) ([]byte, error) {
	if users == nil {
		users = make([]model.User, 0)
	}
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}
	return data, nil
}

// maxNumericID находит наибольший числовой id в коллекции; нечисловые id пропускаются.
func maxNumericID(users []model.User) int64 {
	var top int64
	for _, u := range users {
		n, err := strconv.ParseInt(u.ID, 10, 64)
		if err != nil {
			continue
		}
		top = max(top, n)
	}
	return top
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

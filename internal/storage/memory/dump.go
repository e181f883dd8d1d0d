package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magabrotheeeer/usercart/internal/models"
)

type snapshot struct {
	Users []models.User `json:"users"`
	Posts []models.Post `json:"posts"`
}

// loadSnapshot читает дамп. Отсутствующий или пустой файл означает пустое состояние.
func loadSnapshot(path string) (snapshot, error) {
	const op = "storage.memory.loadSnapshot"

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return snapshot{}, nil
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(data) == 0 {
		return snapshot{}, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return snap, nil
}

// saveSnapshot пишет дамп во временный файл и атомарно переименовывает его.
func saveSnapshot(path string, snap snapshot) error {
	const op = "storage.memory.saveSnapshot"

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

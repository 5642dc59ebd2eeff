package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"grind/internal/modules/timer/domain"
	timerout "grind/internal/modules/timer/port/out"
	apperrors "grind/internal/platform/errors"
)

// FileActiveTimerStore keeps the live timer in a JSON file so a session in
// progress survives process restarts.
type FileActiveTimerStore struct {
	path string
}

func NewFileActiveTimerStore(path string) timerout.ActiveTimerStore {
	return &FileActiveTimerStore{path: path}
}

func (s *FileActiveTimerStore) Save(_ context.Context, timer domain.Timer) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create timer dir: %w", err)
	}
	payload, err := json.MarshalIndent(timer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timer: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write timer: %w", err)
	}
	return nil
}

func (s *FileActiveTimerStore) Load(_ context.Context) (domain.Timer, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Timer{}, apperrors.ErrNoActiveTimer
		}
		return domain.Timer{}, fmt.Errorf("read timer: %w", err)
	}
	timer := domain.Timer{}
	if err := json.Unmarshal(payload, &timer); err != nil {
		return domain.Timer{}, fmt.Errorf("decode timer: %w", err)
	}
	if !timer.Active() {
		return domain.Timer{}, apperrors.ErrNoActiveTimer
	}
	return timer, nil
}

func (s *FileActiveTimerStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear timer: %w", err)
	}
	return nil
}

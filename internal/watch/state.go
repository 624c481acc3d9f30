package watch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"StockPulse/internal/model"
)

// Entry is the last verdict observed for one symbol.
type Entry struct {
	Direction  model.Direction `json:"direction"`
	Confidence int             `json:"confidence"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// State maps symbols to their last observed verdict.
type State map[string]Entry

// LoadState reads the watch state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return nil, err
	}
	state := State{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// SaveState writes the watch state to a JSON file, creating its directory if needed.
func SaveState(filePath string, state State) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

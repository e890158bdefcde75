package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/PackView/internal/model"
)

// SessionFileVersion is written into every session file.
const SessionFileVersion = "1.0.0"

// SessionFile is the on-disk form of a session: the request that was sent to
// the packer and the layout it returned.
type SessionFile struct {
	Version   string        `json:"version"`
	CreatedAt string        `json:"created_at"`
	Session   model.Session `json:"session"`
}

// SaveSession writes a session to a single JSON file.
func SaveSession(path string, session model.Session) error {
	file := SessionFile{
		Version:   SessionFileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Session:   session,
	}
	if err := writeJSON(path, file); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession reads a session file. A stored layout is re-validated with the
// layout schema.
func LoadSession(path string) (model.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var raw struct {
		Version   string          `json:"version"`
		CreatedAt string          `json:"created_at"`
		Session   json.RawMessage `json:"session"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if raw.Version == "" {
		return model.Session{}, fmt.Errorf("invalid session file: missing version field")
	}

	var body struct {
		Name    string                `json:"name"`
		Request *model.GeneratedInput `json:"request"`
		Layout  json.RawMessage       `json:"layout"`
	}
	if err := json.Unmarshal(raw.Session, &body); err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session: %w", err)
	}

	session := model.Session{Name: body.Name, Request: body.Request}
	if len(body.Layout) > 0 && string(body.Layout) != "null" {
		layout, err := DecodeLayout(body.Layout)
		if err != nil {
			return model.Session{}, fmt.Errorf("session layout: %w", err)
		}
		session.Layout = &layout
	}
	if session.Name == "" {
		session.Name = model.NewSession().Name
	}
	return session, nil
}

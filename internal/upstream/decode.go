package upstream

import (
	"encoding/json"
	"fmt"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// The upstream is loose about response envelopes: lists arrive either as a
// bare array or wrapped in {"users": [...]}, single records either bare or
// wrapped in {"user": {...}}. Each shape is normalized exactly once here so
// the rest of the service only ever sees canonical domain values.

func decodeUsers(data []byte) ([]domain.User, error) {
	var users []domain.User
	if err := json.Unmarshal(data, &users); err == nil {
		return users, nil
	}

	var wrapped struct {
		Users []domain.User `json:"users"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	if wrapped.Users == nil {
		wrapped.Users = []domain.User{}
	}
	return wrapped.Users, nil
}

func decodeUser(data []byte) (*domain.User, error) {
	var wrapped struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("decode user: missing id")
	}
	return &user, nil
}

func decodeProfile(data []byte) (*domain.User, error) {
	var wrapped struct {
		Profile *domain.User `json:"profile"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if wrapped.Profile == nil {
		return nil, fmt.Errorf("decode profile: missing profile field")
	}
	return wrapped.Profile, nil
}

// apiMessage extracts the human-readable message from an upstream body,
// accepting either {"message": ...} or {"error": ...}.
func apiMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

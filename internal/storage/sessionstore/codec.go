package sessionstore

import (
	"encoding/json"
	"fmt"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

func encode(session *model.Session) ([]byte, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return payload, nil
}

func decode(payload []byte) (*model.Session, error) {
	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

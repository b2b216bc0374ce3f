package workspace

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity names one workspace session. It is built once per Workspace, so
// every request within a session sees the same ID.
type Identity struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// Create builds a fresh UUID v7 identity.
func (Identity) Create(ws *Workspace) (Identity, bool) {
	id, err := uuid.NewV7()
	if err != nil {
		ws.logger.Warn("generate session id", zap.Error(err))
		return Identity{}, false
	}
	return Identity{ID: id.String(), StartedAt: time.Now().UTC()}, true
}

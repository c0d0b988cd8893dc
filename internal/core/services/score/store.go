package score

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"guess-the-guild/internal/core/ports"
)

// IntStore stores integers as decimal text under a single namespace.
type IntStore struct {
	kv        ports.KeyValueStore
	namespace string
}

func NewIntStore(kv ports.KeyValueStore, namespace string) *IntStore {
	return &IntStore{kv: kv, namespace: namespace}
}

func PlayerNamespace(playerID string) string {
	return "player:" + playerID
}

// GetInt treats unparsable values as absent.
func (s *IntStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.namespace, key)
	if err != nil || !ok {
		return 0, false, err
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("Ignoring malformed stored value", "namespace", s.namespace, "key", key, "value", raw)
		return 0, false, nil
	}
	return v, true, nil
}

func (s *IntStore) SetInt(ctx context.Context, key string, value int) error {
	return s.kv.Set(ctx, s.namespace, key, strconv.Itoa(value))
}

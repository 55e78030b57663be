package redis

import (
	"fmt"

	"github.com/mcoot/playerbase/internal/model"
)

type keys struct {
	prefix string
}

// player returns the key holding one player's JSON record
func (k keys) player(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", k.prefix, id)
}

// playerIndex returns the SET of every stored player ID
func (k keys) playerIndex() string {
	return fmt.Sprintf("%s:idx:players", k.prefix)
}

// nextID returns the counter INCR'd to allocate player IDs
func (k keys) nextID() string {
	return fmt.Sprintf("%s:seq:player_id", k.prefix)
}

package redis

import (
	"encoding/json"
	"time"

	"github.com/mcoot/playerbase/internal/model"
)

// playerRecord is the JSON document stored per player.
// Derived attributes are recomputed on load rather than persisted.
type playerRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Race       string `json:"race"`
	Profession string `json:"profession"`
	Experience int    `json:"experience"`
	Birthday   int64  `json:"birthday"` // Unix millis
	Banned     bool   `json:"banned"`
}

func encodePlayer(p *model.Player) ([]byte, error) {
	return json.Marshal(playerRecord{
		ID:         int64(p.ID),
		Name:       p.Name,
		Title:      p.Title,
		Race:       string(p.Race),
		Profession: string(p.Profession),
		Experience: p.Experience,
		Birthday:   p.Birthday.UnixMilli(),
		Banned:     p.Banned,
	})
}

func decodePlayer(data []byte) (*model.Player, error) {
	var rec playerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	p := &model.Player{
		ID:         model.PlayerID(rec.ID),
		Name:       rec.Name,
		Title:      rec.Title,
		Race:       model.Race(rec.Race),
		Profession: model.Profession(rec.Profession),
		Birthday:   time.UnixMilli(rec.Birthday).UTC(),
		Banned:     rec.Banned,
	}
	p.SetExperience(rec.Experience)
	return p, nil
}

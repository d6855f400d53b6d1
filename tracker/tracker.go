// Package tracker reconciles roster players against the Riot API: ranked
// standing, recent match history, live status and live-game snapshots. All
// provider traffic goes through one shared rate-limited client and players
// are processed strictly sequentially to stay inside the per-key quota.
package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yuhanfang/riot/staticdata"
	"gorm.io/gorm"

	"soloq-tracker/riot"
)

type Tracker struct {
	db         *gorm.DB
	client     riot.API
	champions  *staticdata.ChampionList
	matchCount int
	log        zerolog.Logger

	// now is swapped out in tests
	now func() time.Time
}

func New(db *gorm.DB, client riot.API, champions *staticdata.ChampionList, matchCount int, log zerolog.Logger) *Tracker {
	if matchCount <= 0 {
		matchCount = 5
	}
	return &Tracker{
		db:         db,
		client:     client,
		champions:  champions,
		matchCount: matchCount,
		log:        log,
		now:        time.Now,
	}
}

// WinRate renders wins/(wins+losses) as a percentage with one decimal,
// "70.0" style. Zero games is "0", never NaN.
func WinRate(wins, losses int) string {
	total := wins + losses
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(wins)/float64(total)*100)
}

// championName resolves a champion id against the static data list, falling
// back to the raw id when the list is missing or stale.
func (t *Tracker) championName(id int64) string {
	if t.champions != nil {
		for _, champ := range t.champions.Data {
			if champ.Key == fmt.Sprint(id) {
				return champ.Name
			}
		}
	}
	return fmt.Sprint(id)
}

func (t *Tracker) banList(bans []riot.BannedChampion) string {
	names := make([]string, 0, len(bans))
	for _, b := range bans {
		// -1 means the ban was skipped
		if b.ChampionID <= 0 {
			continue
		}
		names = append(names, t.championName(b.ChampionID))
	}
	return strings.Join(names, ",")
}

func joinOutcomes(outcomes []bool) string {
	parts := make([]string, len(outcomes))
	for i, win := range outcomes {
		parts[i] = strconv.FormatBool(win)
	}
	return strings.Join(parts, ",")
}

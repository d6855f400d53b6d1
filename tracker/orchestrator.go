package tracker

import (
	"context"
	"time"

	"soloq-tracker/structs"
)

// PlayerResult is one roster entry of a full sync response. RecentMatches is
// the win/loss sequence of the processed matches, newest first; a player
// whose sync failed comes back with its stored state and an empty list.
type PlayerResult struct {
	structs.Player
	RecentMatches []bool `json:"recentMatches"`
}

// SyncAll runs the full pipeline (ranked standing, match history, live
// status) over the whole roster, one player at a time. A failure for one
// player degrades that player's entry and moves on; it never aborts the
// batch. Only the initial roster query can fail the call as a whole.
func (t *Tracker) SyncAll(ctx context.Context) ([]PlayerResult, error) {
	started := t.now()

	var players []structs.Player
	if err := t.db.Order("id").Find(&players).Error; err != nil {
		return nil, err
	}

	results := make([]PlayerResult, 0, len(players))
	failed := 0
	for i := range players {
		res, err := t.SyncPlayer(ctx, &players[i])
		if err != nil {
			failed++
			t.log.Error().Err(err).Str("summoner", players[i].SummonerName).Msg("player sync failed")
			results = append(results, PlayerResult{Player: players[i], RecentMatches: []bool{}})
			continue
		}
		results = append(results, res)
	}

	t.logRun("full_sync", len(players), failed, 0, started)
	return results, nil
}

// SyncPlayer runs one player through reconciler, ingestor and detector and
// persists the row once at the end. The caller's struct is only updated
// when the whole pipeline succeeded, so a degraded entry reflects stored
// state, not a half-applied one.
func (t *Tracker) SyncPlayer(ctx context.Context, p *structs.Player) (PlayerResult, error) {
	synced := *p

	if err := t.ReconcileRankedStats(ctx, &synced); err != nil {
		return PlayerResult{}, err
	}
	outcomes, err := t.IngestMatchHistory(ctx, &synced)
	if err != nil {
		return PlayerResult{}, err
	}
	t.DetectLiveStatus(ctx, &synced)

	if err := t.db.Save(&synced).Error; err != nil {
		return PlayerResult{}, err
	}

	*p = synced
	return PlayerResult{Player: synced, RecentMatches: outcomes}, nil
}

// RefreshLiveGames runs the live-game snapshot pass over the whole roster
// (not just players already flagged in_game — the flag itself is derived
// from this pass) and returns how many distinct games were touched.
func (t *Tracker) RefreshLiveGames(ctx context.Context) (int, error) {
	started := t.now()

	var players []structs.Player
	if err := t.db.Order("id").Find(&players).Error; err != nil {
		return 0, err
	}

	games := make(map[int64]struct{})
	failed := 0
	for i := range players {
		gameID, err := t.SnapshotLiveGame(ctx, &players[i])
		if err != nil {
			failed++
			t.log.Error().Err(err).Str("summoner", players[i].SummonerName).Msg("live game snapshot failed")
			continue
		}
		if gameID != 0 {
			games[gameID] = struct{}{}
		}
	}

	t.logRun("live_refresh", len(players), failed, len(games), started)
	return len(games), nil
}

func (t *Tracker) logRun(trigger string, total, failed, games int, started time.Time) {
	entry := structs.SyncLog{
		Trigger:       trigger,
		PlayersTotal:  total,
		PlayersFailed: failed,
		GamesTouched:  games,
		DurationMs:    t.now().Sub(started).Milliseconds(),
	}
	if err := t.db.Create(&entry).Error; err != nil {
		t.log.Warn().Err(err).Msg("sync log write failed")
	}
}

package tracker

import (
	"context"

	"soloq-tracker/riot"
	"soloq-tracker/structs"
)

// ReconcileRankedStats refreshes the player's solo queue standing and the
// derived totals. A player with no solo queue entry is UNRANKED with an
// empty division and zero LP. The player row is mutated in place; persisting
// it is the caller's job, and no new Player is ever created here.
func (t *Tracker) ReconcileRankedStats(ctx context.Context, p *structs.Player) error {
	entries, err := t.client.LeagueEntriesByPUUID(ctx, p.Puuid)
	if err != nil && !riot.IsAbsent(err) {
		return err
	}

	var soloQ *riot.LeagueEntry
	for i := range entries {
		if entries[i].QueueType == riot.QueueSolo {
			soloQ = &entries[i]
			break
		}
	}

	if soloQ == nil {
		p.Tier = "UNRANKED"
		p.Rank = ""
		p.Lp = 0
		p.Wins = 0
		p.Losses = 0
		p.TotalGames = 0
		p.WinRate = "0"
		return nil
	}

	p.Tier = soloQ.Tier
	p.Rank = soloQ.Rank
	p.Lp = soloQ.LeaguePoints
	p.Wins = soloQ.Wins
	p.Losses = soloQ.Losses
	p.TotalGames = soloQ.Wins + soloQ.Losses
	p.WinRate = WinRate(soloQ.Wins, soloQ.Losses)
	return nil
}

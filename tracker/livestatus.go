package tracker

import (
	"context"

	"soloq-tracker/riot"
	"soloq-tracker/structs"
)

// DetectLiveStatus flips the player's in_game flag from the spectator
// endpoint. Absent is a positive "not in game" and clears the flag without
// touching last_online; a live game sets the flag and stamps last_online.
// Any other error keeps the prior state, so the flag never regresses on
// provider noise it cannot confirm.
func (t *Tracker) DetectLiveStatus(ctx context.Context, p *structs.Player) {
	_, err := t.client.ActiveGameByPUUID(ctx, p.Puuid)
	switch {
	case err == nil:
		p.InGame = true
		now := t.now()
		p.LastOnline = &now
	case riot.IsAbsent(err):
		p.InGame = false
	default:
		t.log.Warn().Err(err).Str("puuid", p.Puuid).Msg("live status check failed, keeping previous state")
	}
}

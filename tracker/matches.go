package tracker

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"soloq-tracker/riot"
	"soloq-tracker/structs"
)

// IngestMatchHistory fetches the player's most recent ranked matches and
// stores one RecentMatch row per match. Re-polling the same match id is a
// no-op, so consecutive cycles never duplicate rows. The returned outcome
// sequence is newest first; that order is the contract, and it is also
// written into the player's LastGames field.
func (t *Tracker) IngestMatchHistory(ctx context.Context, p *structs.Player) ([]bool, error) {
	ids, err := t.client.MatchIDsByPUUID(ctx, p.Puuid, t.matchCount)
	if err != nil {
		return nil, err
	}

	outcomes := make([]bool, 0, len(ids))
	for _, id := range ids {
		match, err := t.client.MatchByID(ctx, id)
		if err != nil {
			return nil, err
		}

		var me *riot.MatchParticipant
		for i := range match.Info.Participants {
			if match.Info.Participants[i].Puuid == p.Puuid {
				me = &match.Info.Participants[i]
				break
			}
		}
		if me == nil {
			// the id came from this player's match list, so the entry has to be there
			return nil, &riot.FatalError{Detail: fmt.Sprintf("match %s: participant %s missing", id, p.Puuid)}
		}

		row := structs.RecentMatch{
			MatchID:          match.Metadata.MatchID,
			GameDatetime:     time.UnixMilli(match.Info.GameStartTimestamp),
			Team:             p.Team,
			Puuid:            p.Puuid,
			SummonerName:     p.SummonerName,
			Win:              me.Win,
			ChampionName:     me.ChampionName,
			OpponentChampion: opponentChampion(match.Info.Participants, me),
			Kills:            me.Kills,
			Deaths:           me.Deaths,
			Assists:          me.Assists,
		}
		err = t.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return nil, err
		}

		outcomes = append(outcomes, me.Win)
	}

	p.LastGames = joinOutcomes(outcomes)
	return outcomes, nil
}

// opponentChampion finds the lane opponent: any participant on the other
// team whose assigned role or lane equals the tracked participant's role.
// No match means nil, never a guess.
func opponentChampion(participants []riot.MatchParticipant, me *riot.MatchParticipant) *string {
	role := me.Role()
	if role == "" {
		return nil
	}
	for i := range participants {
		other := &participants[i]
		if other.TeamID == me.TeamID {
			continue
		}
		if other.TeamPosition == role || other.Lane == role {
			name := other.ChampionName
			return &name
		}
	}
	return nil
}

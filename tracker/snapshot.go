package tracker

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"soloq-tracker/riot"
	"soloq-tracker/structs"
)

// SnapshotLiveGame reconciles the stored live-game state of one player
// against the provider. It returns the observed game id, or 0 when the
// player is not in a game.
//
// Not in game: every ActiveGame row referencing the player is evicted
// (participants in cascade) and in_game is cleared. In game: the game and
// its participants are upserted by key, rows referencing the player under a
// different game id are evicted, and every participant's ranked standing is
// cached best-effort. Any other provider error leaves stale rows for a
// future cycle to resolve.
func (t *Tracker) SnapshotLiveGame(ctx context.Context, p *structs.Player) (int64, error) {
	game, err := t.client.ActiveGameByPUUID(ctx, p.Puuid)
	if riot.IsAbsent(err) {
		if err := t.evictStaleGames(p.Puuid, 0); err != nil {
			return 0, err
		}
		p.InGame = false
		err := t.db.Model(&structs.Player{}).Where("puuid = ?", p.Puuid).
			Update("in_game", false).Error
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	now := t.now()
	p.InGame = true
	p.LastOnline = &now
	err = t.db.Model(&structs.Player{}).Where("puuid = ?", p.Puuid).
		Updates(map[string]interface{}{"in_game": true, "last_online": now}).Error
	if err != nil {
		return 0, err
	}

	row := structs.ActiveGame{
		GameID:          game.GameID,
		PlayerRef:       p.Puuid,
		GameStartTime:   time.UnixMilli(game.GameStartTime),
		GameMode:        game.GameMode,
		GameType:        game.GameType,
		QueueID:         game.GameQueueConfigID,
		GameDuration:    game.GameLength,
		MapID:           game.MapID,
		PlatformID:      game.PlatformID,
		BannedChampions: t.banList(game.BannedChampions),
	}
	err = t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"game_duration", "banned_champions", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}

	for _, part := range game.Participants {
		gp := structs.GameParticipant{
			GameID:        game.GameID,
			Puuid:         part.Puuid,
			TeamID:        part.TeamID,
			ChampionID:    part.ChampionID,
			ChampionName:  t.championName(part.ChampionID),
			RiotID:        part.RiotID,
			Spell1ID:      part.Spell1ID,
			Spell2ID:      part.Spell2ID,
			PerkStyle:     part.Perks.PerkStyle,
			PerkSubStyle:  part.Perks.PerkSubStyle,
			PerkIDs:       joinInt64s(part.Perks.PerkIDs),
			ProfileIconID: part.ProfileIconID,
		}
		err = t.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "game_id"}, {Name: "puuid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"team_id", "champion_id", "champion_name", "riot_id",
				"spell1_id", "spell2_id", "perk_style", "perk_sub_style",
				"perk_ids", "profile_icon_id", "updated_at",
			}),
		}).Create(&gp).Error
		if err != nil {
			return 0, err
		}
	}

	if err := t.evictStaleGames(p.Puuid, game.GameID); err != nil {
		return 0, err
	}

	for _, part := range game.Participants {
		t.cacheRankInfo(ctx, part)
	}

	return game.GameID, nil
}

// evictStaleGames deletes every ActiveGame row referencing the player except
// the one with id keep (keep 0 deletes them all), participants first. This
// is what holds the one-live-game-per-player-ref invariant.
func (t *Tracker) evictStaleGames(playerRef string, keep int64) error {
	var stale []structs.ActiveGame
	q := t.db.Where("player_ref = ?", playerRef)
	if keep != 0 {
		q = q.Where("game_id <> ?", keep)
	}
	if err := q.Find(&stale).Error; err != nil {
		return err
	}
	for _, g := range stale {
		if err := t.db.Where("game_id = ?", g.GameID).Delete(&structs.GameParticipant{}).Error; err != nil {
			return err
		}
		if err := t.db.Delete(&structs.ActiveGame{}, "game_id = ?", g.GameID).Error; err != nil {
			return err
		}
		t.log.Info().Int64("game_id", g.GameID).Str("player_ref", playerRef).Msg("evicted stale live game")
	}
	return nil
}

// cacheRankInfo upserts the ranked standing of one live-game participant.
// Best-effort: a failed fetch still writes an identity/level row and leaves
// any previously cached rank fields alone, and never aborts the snapshot.
func (t *Tracker) cacheRankInfo(ctx context.Context, part riot.CurrentGameParticipant) {
	info := structs.SummonerRankInfo{
		Puuid:  part.Puuid,
		RiotID: part.RiotID,
	}

	summoner, err := t.client.SummonerByPUUID(ctx, part.Puuid)
	if err == nil {
		info.SummonerLevel = summoner.SummonerLevel
	} else if !riot.IsAbsent(err) {
		t.log.Warn().Err(err).Str("puuid", part.Puuid).Msg("summoner lookup failed")
	}

	entries, lerr := t.client.LeagueEntriesByPUUID(ctx, part.Puuid)
	if lerr != nil && !riot.IsAbsent(lerr) {
		t.log.Warn().Err(lerr).Str("puuid", part.Puuid).Msg("rank lookup failed, caching identity only")
		err := t.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "puuid"}},
			DoUpdates: clause.AssignmentColumns([]string{"riot_id", "summoner_level", "updated_at"}),
		}).Create(&info).Error
		if err != nil {
			t.log.Warn().Err(err).Str("puuid", part.Puuid).Msg("rank info upsert failed")
		}
		return
	}

	for _, e := range entries {
		switch e.QueueType {
		case riot.QueueSolo:
			info.SoloTier = e.Tier
			info.SoloRank = e.Rank
			info.SoloLp = e.LeaguePoints
			info.SoloWins = e.Wins
			info.SoloLosses = e.Losses
		case riot.QueueFlex:
			info.FlexTier = e.Tier
			info.FlexRank = e.Rank
			info.FlexLp = e.LeaguePoints
			info.FlexWins = e.Wins
			info.FlexLosses = e.Losses
		}
	}

	err = t.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "puuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"riot_id", "summoner_level",
			"solo_tier", "solo_rank", "solo_lp", "solo_wins", "solo_losses",
			"flex_tier", "flex_rank", "flex_lp", "flex_wins", "flex_losses",
			"updated_at",
		}),
	}).Create(&info).Error
	if err != nil {
		t.log.Warn().Err(err).Str("puuid", part.Puuid).Msg("rank info upsert failed")
	}
}

func joinInt64s(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

package structs

import (
	"time"

	"gorm.io/gorm"
)

// Database Specifics

// Player is one roster entry of the challenge. Created once via POST /player,
// mutated on every sync cycle, never deleted by the engine.
type Player struct {
	gorm.Model
	PlayerName   string     `json:"player_name"`
	SummonerName string     `json:"summoner_name"`
	Puuid        string     `json:"puuid" gorm:"uniqueIndex"`
	Tag          string     `json:"tag"`
	Team         string     `json:"team"`
	Tier         string     `json:"tier"`
	Rank         string     `json:"rank"`
	Lp           int        `json:"lp"`
	Wins         int        `json:"wins"`
	Losses       int        `json:"losses"`
	TotalGames   int        `json:"total_games"`
	WinRate      string     `json:"win_rate"`
	// LastGames is the comma-joined win/loss sequence of the most recent
	// ranked games, newest first ("true,false,true").
	LastGames  string     `json:"last_games"`
	Opgg       string     `json:"opgg"`
	InGame     bool       `json:"in_game"`
	LastOnline *time.Time `json:"last_online"`
}

// RecentMatch is one completed match of a tracked player. Rows are append-only:
// inserting an already known match_id is a no-op.
type RecentMatch struct {
	gorm.Model
	MatchID          string    `json:"match_id" gorm:"uniqueIndex"`
	GameDatetime     time.Time `json:"game_datetime"`
	Team             string    `json:"team"`
	Puuid            string    `json:"puuid"`
	SummonerName     string    `json:"summoner_name"`
	Win              bool      `json:"win"`
	ChampionName     string    `json:"champion_name"`
	OpponentChampion *string   `json:"opponent_champion"`
	Kills            int       `json:"kills"`
	Deaths           int       `json:"deaths"`
	Assists          int       `json:"assists"`
}

// ActiveGame is a currently live match. PlayerRef is the puuid of the roster
// player whose polling discovered the game; at most one row may reference a
// given PlayerRef at a time. Rows are hard-deleted once the referencing player
// is confirmed out of the game, so no gorm.Model / soft delete here.
type ActiveGame struct {
	GameID          int64     `json:"game_id" gorm:"primaryKey;autoIncrement:false"`
	PlayerRef       string    `json:"player_ref" gorm:"index"`
	GameStartTime   time.Time `json:"game_start_time"`
	GameMode        string    `json:"game_mode"`
	GameType        string    `json:"game_type"`
	QueueID         int64     `json:"queue_id"`
	GameDuration    int64     `json:"game_duration"`
	MapID           int64     `json:"map_id"`
	PlatformID      string    `json:"platform_id"`
	BannedChampions string    `json:"banned_champions"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GameParticipant is one participant of a live game, keyed by (game, puuid).
// Deleted in cascade with its ActiveGame.
type GameParticipant struct {
	GameID        int64     `json:"game_id" gorm:"primaryKey;autoIncrement:false"`
	Puuid         string    `json:"puuid" gorm:"primaryKey"`
	TeamID        int64     `json:"team_id"`
	ChampionID    int64     `json:"champion_id"`
	ChampionName  string    `json:"champion_name"`
	RiotID        string    `json:"riot_id"`
	Spell1ID      int64     `json:"summoner_spell1"`
	Spell2ID      int64     `json:"summoner_spell2"`
	PerkStyle     int64     `json:"perk_style"`
	PerkSubStyle  int64     `json:"perk_sub_style"`
	PerkIDs       string    `json:"perk_ids"`
	ProfileIconID int64     `json:"profile_icon_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SummonerRankInfo caches the ranked standing of anyone observed in a live
// game, tracked or not. Independent lifecycle from ActiveGame.
type SummonerRankInfo struct {
	Puuid         string    `json:"puuid" gorm:"primaryKey"`
	RiotID        string    `json:"riot_id"`
	SummonerLevel int64     `json:"summoner_level"`
	SoloTier      string    `json:"solo_tier"`
	SoloRank      string    `json:"solo_rank"`
	SoloLp        int       `json:"solo_lp"`
	SoloWins      int       `json:"solo_wins"`
	SoloLosses    int       `json:"solo_losses"`
	FlexTier      string    `json:"flex_tier"`
	FlexRank      string    `json:"flex_rank"`
	FlexLp        int       `json:"flex_lp"`
	FlexWins      int       `json:"flex_wins"`
	FlexLosses    int       `json:"flex_losses"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SyncLog records one sync run for the dashboard.
type SyncLog struct {
	gorm.Model
	Trigger       string `json:"trigger"`
	PlayersTotal  int    `json:"players_total"`
	PlayersFailed int    `json:"players_failed"`
	GamesTouched  int    `json:"games_touched"`
	DurationMs    int64  `json:"duration_ms"`
}

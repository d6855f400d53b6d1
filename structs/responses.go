package structs

import "time"

// API response shapes consumed by the dashboard frontend.

// RankedPlayer is a Player plus the computed sort keys GET /players exposes.
type RankedPlayer struct {
	Player
	Winrate   string `json:"winrate"`
	TierValue int    `json:"tierValue"`
	RankValue int    `json:"rankValue"`
}

// PlayerStatus is the reduced row served by GET /players_in_game.
type PlayerStatus struct {
	Puuid        string     `json:"puuid"`
	SummonerName string     `json:"summoner_name"`
	Team         string     `json:"team"`
	InGame       bool       `json:"in_game"`
	LastOnline   *time.Time `json:"last_online"`
	IsOnline     bool       `json:"is_online"`
}

// LiveGameView is one entry of GET /live_games: the game row with its
// participants nested and per-side aggregates.
type LiveGameView struct {
	ActiveGame
	Participants []LiveParticipantView    `json:"participants"`
	Teams        map[string]LiveTeamView  `json:"teams"`
}

// LiveParticipantView joins a GameParticipant with its cached rank standing.
type LiveParticipantView struct {
	GameParticipant
	RankInfo *SummonerRankInfo `json:"rank_info"`
}

// LiveTeamView aggregates one side of a live game.
type LiveTeamView struct {
	TeamID       int64 `json:"team_id"`
	Participants int   `json:"participants"`
	AvgSoloLp    int   `json:"avg_solo_lp"`
}

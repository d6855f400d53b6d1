package riot

// Queue types of interest. Solo queue is the one standing tracked
// challenge-wide; flex is cached for live-game participants.
const (
	QueueSolo = "RANKED_SOLO_5x5"
	QueueFlex = "RANKED_FLEX_SR"
)

// Account is the account-v1 by-riot-id response.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the summoner-v4 by-puuid response.
type Summoner struct {
	Puuid         string `json:"puuid"`
	ProfileIconID int64  `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
}

// LeagueEntry is one league-v4 ranked queue entry.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Match is a match-v5 match detail.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameStartTimestamp int64              `json:"gameStartTimestamp"`
	Participants       []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	Puuid        string `json:"puuid"`
	Win          bool   `json:"win"`
	ChampionName string `json:"championName"`
	TeamPosition string `json:"teamPosition"`
	Lane         string `json:"lane"`
	TeamID       int64  `json:"teamId"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
}

// Role returns the participant's assigned role, falling back to the lane
// when teamPosition is empty (older queues leave it blank).
func (p MatchParticipant) Role() string {
	if p.TeamPosition != "" {
		return p.TeamPosition
	}
	return p.Lane
}

// CurrentGameInfo is the spectator-v5 active game response.
type CurrentGameInfo struct {
	GameID            int64                    `json:"gameId"`
	MapID             int64                    `json:"mapId"`
	GameMode          string                   `json:"gameMode"`
	GameType          string                   `json:"gameType"`
	GameQueueConfigID int64                    `json:"gameQueueConfigId"`
	PlatformID        string                   `json:"platformId"`
	GameStartTime     int64                    `json:"gameStartTime"`
	GameLength        int64                    `json:"gameLength"`
	BannedChampions   []BannedChampion         `json:"bannedChampions"`
	Participants      []CurrentGameParticipant `json:"participants"`
}

type BannedChampion struct {
	ChampionID int64 `json:"championId"`
	TeamID     int64 `json:"teamId"`
	PickTurn   int   `json:"pickTurn"`
}

type CurrentGameParticipant struct {
	Puuid         string `json:"puuid"`
	TeamID        int64  `json:"teamId"`
	ChampionID    int64  `json:"championId"`
	RiotID        string `json:"riotId"`
	Spell1ID      int64  `json:"spell1Id"`
	Spell2ID      int64  `json:"spell2Id"`
	ProfileIconID int64  `json:"profileIconId"`
	Perks         Perks  `json:"perks"`
}

type Perks struct {
	PerkIDs      []int64 `json:"perkIds"`
	PerkStyle    int64   `json:"perkStyle"`
	PerkSubStyle int64   `json:"perkSubStyle"`
}

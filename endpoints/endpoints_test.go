package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"soloq-tracker/riot"
	"soloq-tracker/structs"
	"soloq-tracker/tracker"
)

// stubAPI is a minimal provider double: a known account, one league entry
// per puuid, no match history, nobody in game.
type stubAPI struct {
	leagues map[string][]riot.LeagueEntry
}

func (s *stubAPI) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	return &riot.Account{Puuid: "puuid-" + gameName, GameName: gameName, TagLine: tagLine}, nil
}

func (s *stubAPI) SummonerByPUUID(ctx context.Context, puuid string) (*riot.Summoner, error) {
	return nil, riot.ErrAbsent
}

func (s *stubAPI) LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]riot.LeagueEntry, error) {
	return s.leagues[puuid], nil
}

func (s *stubAPI) MatchIDsByPUUID(ctx context.Context, puuid string, count int) ([]string, error) {
	return nil, nil
}

func (s *stubAPI) MatchByID(ctx context.Context, id string) (*riot.Match, error) {
	return nil, riot.ErrAbsent
}

func (s *stubAPI) ActiveGameByPUUID(ctx context.Context, puuid string) (*riot.CurrentGameInfo, error) {
	return nil, riot.ErrAbsent
}

var _ riot.API = (*stubAPI)(nil)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&structs.Player{},
		&structs.RecentMatch{},
		&structs.ActiveGame{},
		&structs.GameParticipant{},
		&structs.SummonerRankInfo{},
		&structs.SyncLog{},
	))

	api := &stubAPI{leagues: map[string][]riot.LeagueEntry{}}
	trk := tracker.New(db, api, nil, 5, zerolog.Nop())

	engine := html.New("../views", ".html")
	engine.AddFunc("unescape", func(s string) template.HTML {
		return template.HTML(s)
	})
	app := fiber.New(fiber.Config{Views: engine})

	handler := Handler{DB: db, Tracker: trk, Client: api, Log: zerolog.Nop()}
	handler.Register(app)
	return app, db
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestGetPlayersSorting(t *testing.T) {
	app, db := newTestApp(t)

	players := []structs.Player{
		{Puuid: "a", SummonerName: "unranked", Tier: "UNRANKED", Rank: ""},
		{Puuid: "b", SummonerName: "gold2", Tier: "GOLD", Rank: "II", Lp: 10, Wins: 7, Losses: 3},
		{Puuid: "c", SummonerName: "diamond4", Tier: "DIAMOND", Rank: "IV", Lp: 1},
		{Puuid: "d", SummonerName: "gold2high", Tier: "GOLD", Rank: "II", Lp: 80},
		{Puuid: "e", SummonerName: "gold1", Tier: "GOLD", Rank: "I", Lp: 0},
	}
	for i := range players {
		require.NoError(t, db.Create(&players[i]).Error)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/players", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []structs.RankedPlayer
	decode(t, resp, &got)
	require.Len(t, got, 5)

	order := make([]string, len(got))
	for i, p := range got {
		order[i] = p.SummonerName
	}
	// tier desc, division desc, LP desc, unranked last
	assert.Equal(t, []string{"diamond4", "gold1", "gold2high", "gold2", "unranked"}, order)

	assert.Equal(t, "70.0", got[3].Winrate)
	assert.Equal(t, "0", got[4].Winrate)
	assert.Equal(t, 0, got[4].TierValue)
	assert.Equal(t, 0, got[4].RankValue)
}

func TestPlayersInGameIsOnline(t *testing.T) {
	app, db := newTestApp(t)

	recent := time.Now().Add(-5 * time.Minute)
	stale := time.Now().Add(-30 * time.Minute)
	require.NoError(t, db.Create(&structs.Player{Puuid: "a", SummonerName: "fresh", InGame: true, LastOnline: &recent}).Error)
	require.NoError(t, db.Create(&structs.Player{Puuid: "b", SummonerName: "idle", LastOnline: &stale}).Error)
	require.NoError(t, db.Create(&structs.Player{Puuid: "c", SummonerName: "never"}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/players_in_game", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []structs.PlayerStatus
	decode(t, resp, &got)
	require.Len(t, got, 3)

	byName := map[string]structs.PlayerStatus{}
	for _, p := range got {
		byName[p.SummonerName] = p
	}
	assert.True(t, byName["fresh"].IsOnline)
	assert.True(t, byName["fresh"].InGame)
	assert.False(t, byName["idle"].IsOnline)
	assert.False(t, byName["never"].IsOnline)
}

func TestRecentMatchesLimitAndOrder(t *testing.T) {
	app, db := newTestApp(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&structs.RecentMatch{
			MatchID:      fmt.Sprintf("EUW1_%d", i),
			GameDatetime: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/recent_matches", nil))
	require.NoError(t, err)

	var got []structs.RecentMatch
	decode(t, resp, &got)
	require.Len(t, got, 3)
	assert.Equal(t, "EUW1_4", got[0].MatchID)
	assert.Equal(t, "EUW1_2", got[2].MatchID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/recent_matches_extended", nil))
	require.NoError(t, err)
	decode(t, resp, &got)
	assert.Len(t, got, 5)
}

func TestSummonerRankInfoBatch(t *testing.T) {
	app, db := newTestApp(t)

	for _, puuid := range []string{"a", "b", "c"} {
		require.NoError(t, db.Create(&structs.SummonerRankInfo{Puuid: puuid, SoloTier: "GOLD"}).Error)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/summoner_rank_info?puuids=a,c", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []structs.SummonerRankInfo
	decode(t, resp, &got)
	assert.Len(t, got, 2)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/summoner_rank_info", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddPlayerRegistersAndSyncs(t *testing.T) {
	app, db := newTestApp(t)

	body, _ := json.Marshal(map[string]string{
		"playerName":   "Léo",
		"summonerName": "Faker",
		"userTag":      "EUW",
		"team":         "Blue",
	})
	req := httptest.NewRequest(http.MethodPost, "/player", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]bool
	decode(t, resp, &got)
	assert.True(t, got["success"])

	var p structs.Player
	require.NoError(t, db.Where("puuid = ?", "puuid-Faker").First(&p).Error)
	assert.Equal(t, "Faker", p.SummonerName)
	assert.Equal(t, "Blue", p.Team)
	// the immediate reconciliation ran: no solo entry in the stub, so UNRANKED
	assert.Equal(t, "UNRANKED", p.Tier)
	assert.Equal(t, "0", p.WinRate)
}

func TestUpdatePlayersReturnsResults(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&structs.Player{Puuid: "p1", SummonerName: "one"}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/update_players", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []tracker.PlayerResult
	decode(t, resp, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "UNRANKED", got[0].Tier)
	assert.NotNil(t, got[0].RecentMatches)
}

func TestInsertLiveGamesCount(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&structs.Player{Puuid: "p1"}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/insert_live_games", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]int
	decode(t, resp, &got)
	assert.Equal(t, 0, got["updated_games"])
}

func TestLiveGamesView(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&structs.ActiveGame{
		GameID:        42,
		PlayerRef:     "p1",
		GameStartTime: time.Now().Add(-10 * time.Minute),
		GameMode:      "CLASSIC",
	}).Error)
	require.NoError(t, db.Create(&structs.GameParticipant{GameID: 42, Puuid: "p1", TeamID: 100, ChampionName: "Ahri"}).Error)
	require.NoError(t, db.Create(&structs.GameParticipant{GameID: 42, Puuid: "x1", TeamID: 200, ChampionName: "Zed"}).Error)
	require.NoError(t, db.Create(&structs.SummonerRankInfo{Puuid: "x1", SoloTier: "MASTER", SoloLp: 200}).Error)

	// outside the one hour window, must not show up
	require.NoError(t, db.Create(&structs.ActiveGame{
		GameID:        43,
		PlayerRef:     "p2",
		GameStartTime: time.Now().Add(-2 * time.Hour),
	}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/live_games", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []structs.LiveGameView
	decode(t, resp, &got)
	require.Len(t, got, 1)
	assert.EqualValues(t, 42, got[0].GameID)
	require.Len(t, got[0].Participants, 2)

	var x1 structs.LiveParticipantView
	for _, p := range got[0].Participants {
		if p.Puuid == "x1" {
			x1 = p
		}
	}
	require.NotNil(t, x1.RankInfo)
	assert.Equal(t, "MASTER", x1.RankInfo.SoloTier)

	assert.Equal(t, 1, got[0].Teams["team1"].Participants)
	assert.Equal(t, 200, got[0].Teams["team2"].AvgSoloLp)
}

func TestDashboardRenders(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&structs.SyncLog{Trigger: "full_sync", PlayersTotal: 3}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "full_sync")
	assert.Contains(t, string(body), "<table>")
}

package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"soloq-tracker/riot"
	"soloq-tracker/structs"
)

// fakeAPI serves canned provider responses keyed by puuid / match id.
// Anything not present answers with riot.ErrAbsent, and explicit errors can
// be injected per lookup.
type fakeAPI struct {
	leagues    map[string][]riot.LeagueEntry
	leagueErr  map[string]error
	matchIDs   map[string][]string
	matchIDErr map[string]error
	matches    map[string]*riot.Match
	active     map[string]*riot.CurrentGameInfo
	activeErr  map[string]error
	summoners  map[string]*riot.Summoner

	calls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		leagues:    map[string][]riot.LeagueEntry{},
		leagueErr:  map[string]error{},
		matchIDs:   map[string][]string{},
		matchIDErr: map[string]error{},
		matches:    map[string]*riot.Match{},
		active:     map[string]*riot.CurrentGameInfo{},
		activeErr:  map[string]error{},
		summoners:  map[string]*riot.Summoner{},
	}
}

func (f *fakeAPI) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	f.calls = append(f.calls, "account")
	return &riot.Account{Puuid: "puuid-" + gameName, GameName: gameName, TagLine: tagLine}, nil
}

func (f *fakeAPI) SummonerByPUUID(ctx context.Context, puuid string) (*riot.Summoner, error) {
	f.calls = append(f.calls, "summoner:"+puuid)
	if s, ok := f.summoners[puuid]; ok {
		return s, nil
	}
	return nil, riot.ErrAbsent
}

func (f *fakeAPI) LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]riot.LeagueEntry, error) {
	f.calls = append(f.calls, "league:"+puuid)
	if err, ok := f.leagueErr[puuid]; ok {
		return nil, err
	}
	return f.leagues[puuid], nil
}

func (f *fakeAPI) MatchIDsByPUUID(ctx context.Context, puuid string, count int) ([]string, error) {
	f.calls = append(f.calls, "matchids:"+puuid)
	if err, ok := f.matchIDErr[puuid]; ok {
		return nil, err
	}
	ids := f.matchIDs[puuid]
	if len(ids) > count {
		ids = ids[:count]
	}
	return ids, nil
}

func (f *fakeAPI) MatchByID(ctx context.Context, id string) (*riot.Match, error) {
	f.calls = append(f.calls, "match:"+id)
	if m, ok := f.matches[id]; ok {
		return m, nil
	}
	return nil, riot.ErrAbsent
}

func (f *fakeAPI) ActiveGameByPUUID(ctx context.Context, puuid string) (*riot.CurrentGameInfo, error) {
	f.calls = append(f.calls, "active:"+puuid)
	if err, ok := f.activeErr[puuid]; ok {
		return nil, err
	}
	if g, ok := f.active[puuid]; ok {
		return g, nil
	}
	return nil, riot.ErrAbsent
}

var _ riot.API = (*fakeAPI)(nil)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T, api riot.API) (*Tracker, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	trk := New(db, api, nil, 5, zerolog.Nop())
	trk.now = func() time.Time { return testTime }
	return trk, db
}

func testMatch(id, puuid string, win bool, startMillis int64) *riot.Match {
	return &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id, Participants: []string{puuid}},
		Info: riot.MatchInfo{
			GameStartTimestamp: startMillis,
			Participants: []riot.MatchParticipant{
				{Puuid: puuid, Win: win, ChampionName: "Ahri", TeamPosition: "MIDDLE", TeamID: 100, Kills: 5, Deaths: 2, Assists: 7},
				{Puuid: "enemy-mid", Win: !win, ChampionName: "Zed", TeamPosition: "MIDDLE", TeamID: 200},
				{Puuid: "enemy-top", Win: !win, ChampionName: "Darius", TeamPosition: "TOP", TeamID: 200},
			},
		},
	}
}

func testLiveGame(gameID int64, puuids ...string) *riot.CurrentGameInfo {
	g := &riot.CurrentGameInfo{
		GameID:            gameID,
		MapID:             11,
		GameMode:          "CLASSIC",
		GameType:          "MATCHED",
		GameQueueConfigID: 420,
		PlatformID:        "EUW1",
		GameStartTime:     testTime.Add(-10 * time.Minute).UnixMilli(),
		GameLength:        600,
		BannedChampions: []riot.BannedChampion{
			{ChampionID: 238, TeamID: 100, PickTurn: 1},
			{ChampionID: -1, TeamID: 200, PickTurn: 2},
		},
	}
	for i, puuid := range puuids {
		team := int64(100)
		if i%2 == 1 {
			team = 200
		}
		g.Participants = append(g.Participants, riot.CurrentGameParticipant{
			Puuid:      puuid,
			TeamID:     team,
			ChampionID: int64(100 + i),
			RiotID:     "rioter-" + puuid,
			Spell1ID:   4,
			Spell2ID:   14,
			Perks:      riot.Perks{PerkIDs: []int64{8112, 8126}, PerkStyle: 8100, PerkSubStyle: 8300},
		})
	}
	return g
}

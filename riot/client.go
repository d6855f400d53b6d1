// Package riot talks to the Riot API under a fixed request-rate budget and
// maps provider responses onto a small typed result set: data, ErrAbsent,
// TransientError or FatalError.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/ratelimit"
)

// API is the provider surface the tracker consumes. Production code uses
// *Client; tests substitute fakes.
type API interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error)
	SummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error)
	LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error)
	MatchIDsByPUUID(ctx context.Context, puuid string, count int) ([]string, error)
	MatchByID(ctx context.Context, id string) (*Match, error)
	ActiveGameByPUUID(ctx context.Context, puuid string) (*CurrentGameInfo, error)
}

// Client is a rate-limited Riot API client. All calls share one limiter, so
// the aggregate rate stays under the per-key quota no matter how many
// components fetch through it. The limiter gates before every call; the
// first call of a batch passes immediately.
type Client struct {
	apiKey       string
	platformHost string // e.g. https://euw1.api.riotgames.com
	clusterHost  string // e.g. https://europe.api.riotgames.com
	httpClient   *http.Client
	limiter      ratelimit.Limiter
	log          zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient builds a client issuing at most perSecond requests per second
// (10 means the default 100ms spacing between consecutive calls).
func NewClient(apiKey, platformHost, clusterHost string, perSecond int, log zerolog.Logger) *Client {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &Client{
		apiKey:       apiKey,
		platformHost: platformHost,
		clusterHost:  clusterHost,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      ratelimit.New(perSecond),
		log:          log,
	}
}

func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	var acc Account
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.clusterHost, url.PathEscape(gameName), url.PathEscape(tagLine))
	if err := c.get(ctx, u, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *Client) SummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	var s Summoner
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformHost, url.PathEscape(puuid))
	if err := c.get(ctx, u, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	var entries []LeagueEntry
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformHost, url.PathEscape(puuid))
	if err := c.get(ctx, u, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) MatchIDsByPUUID(ctx context.Context, puuid string, count int) ([]string, error) {
	var ids []string
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?type=ranked&count=%d",
		c.clusterHost, url.PathEscape(puuid), count)
	if err := c.get(ctx, u, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) MatchByID(ctx context.Context, id string) (*Match, error) {
	var m Match
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.clusterHost, url.PathEscape(id))
	if err := c.get(ctx, u, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) ActiveGameByPUUID(ctx context.Context, puuid string) (*CurrentGameInfo, error) {
	var g CurrentGameInfo
	u := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", c.platformHost, url.PathEscape(puuid))
	if err := c.get(ctx, u, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
// Classification: 404 -> ErrAbsent, network/429/5xx -> TransientError,
// any other non-200 or an undecodable body -> FatalError. Retrying is the
// caller's business.
func (c *Client) get(ctx context.Context, rawurl string, out interface{}) error {
	c.limiter.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return &FatalError{Detail: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransientError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrAbsent
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		c.log.Warn().Int("status", resp.StatusCode).Str("url", rawurl).Msg("transient provider response")
		return &TransientError{StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FatalError{StatusCode: resp.StatusCode, Detail: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FatalError{Detail: "decoding response: " + err.Error()}
	}
	return nil
}

package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/five82/motostats/internal/api"
	"github.com/five82/motostats/internal/motogp"
	"github.com/five82/motostats/internal/site"
	"github.com/five82/motostats/internal/state"
)

type heading struct {
	Title    string
	Subtitle string
}

type failureBlock struct {
	Icon    string
	Message string
	Retry   string
	Label   string
}

type emptyBlock struct {
	Title string
	Body  string
	Note  string
}

type featureLink struct {
	Title       string
	Description string
	Action      string
	Path        string
}

type homeBody struct {
	Title    string
	Subtitle string
	Features []featureLink
	Stats    []site.Stat
}

type riderCard struct {
	ID     int64
	Name   string
	Badge  string
	Status string
}

type ridersBody struct {
	Heading heading
	Failure *failureBlock
	Empty   *emptyBlock
	Riders  []riderCard
}

type raceCard struct {
	ID       int64
	Circuit  string
	Date     string
	SeasonID int64
}

type racesBody struct {
	Heading heading
	Failure *failureBlock
	Empty   *emptyBlock
	Races   []raceCard
}

type statCard struct {
	Title string
	Value string
}

type riderBody struct {
	Failure *failureBlock
	Rider   riderCard
	Stats   []statCard
}

type standingsBody struct {
	Heading heading
	Body    string
}

// load runs one fetch through a fresh page so the HTML front end applies the
// same failure rules as the TUI.
func load[T any](ctx context.Context, failure string, opts []state.PageOption, fetch func(context.Context) (T, error)) state.Page[T] {
	page := state.NewPage[T](failure, opts...)
	ticket := page.Begin()
	page.Resolve(ticket, state.Run(ctx, fetch))
	return page
}

func (s *Server) failure(r *http.Request, message string, err error) *failureBlock {
	s.logger.Info("page load failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", api.Classify(err).String()),
		zap.Error(err),
	)
	return &failureBlock{
		Icon:    site.ErrorIcon,
		Message: message,
		Retry:   r.URL.RequestURI(),
		Label:   site.RetryLabel,
	}
}

func newRiderCard(r motogp.Rider) riderCard {
	badge, _ := r.Badge()
	return riderCard{ID: r.ID, Name: r.FullName(), Badge: badge, Status: r.StatusLabel()}
}

func (s *Server) home(w http.ResponseWriter, _ *http.Request) {
	body := homeBody{
		Title:    site.HeroTitle,
		Subtitle: site.HeroSubtitle,
		Stats:    site.Stats,
	}
	paths := make(map[site.Page]string, len(site.Nav))
	for _, item := range site.Nav {
		paths[item.Page] = item.Path
	}
	for _, f := range site.Features {
		body.Features = append(body.Features, featureLink{
			Title:       f.Title,
			Description: f.Description,
			Action:      f.Action,
			Path:        paths[f.Page],
		})
	}
	s.render(w, http.StatusOK, "home", "Home", site.Home, body)
}

func (s *Server) riders(w http.ResponseWriter, r *http.Request) {
	page := load(r.Context(), state.RidersFailure, s.pageOpts, s.fetcher.ListRiders)

	body := ridersBody{Heading: heading{Title: site.RidersTitle, Subtitle: site.RidersSubtitle}}
	status := http.StatusOK
	switch {
	case page.Phase() == state.Failure:
		body.Failure = s.failure(r, page.Message(), page.Err())
		status = http.StatusBadGateway
	case state.Empty(page):
		body.Empty = &emptyBlock{Title: site.RidersEmptyTitle, Body: site.RidersEmptyBody, Note: site.EmptyAPIOK}
	default:
		riders := page.Data()
		body.Heading.Subtitle += fmt.Sprintf(" (%d riders)", len(riders))
		body.Riders = make([]riderCard, 0, len(riders))
		for _, rd := range riders {
			body.Riders = append(body.Riders, newRiderCard(rd))
		}
	}
	s.render(w, status, "riders", site.RidersTitle, site.Riders, body)
}

func (s *Server) rider(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid rider id", http.StatusBadRequest)
		return
	}

	page := load(r.Context(), state.RiderFailure, s.pageOpts, func(ctx context.Context) (motogp.RiderWithResults, error) {
		return s.fetcher.GetRiderStats(ctx, id)
	})
	if page.Phase() == state.Failure {
		body := riderBody{Failure: s.failure(r, page.Message(), page.Err())}
		s.render(w, http.StatusBadGateway, "rider", site.RidersTitle, site.Riders, body)
		return
	}

	stats := page.Data()
	body := riderBody{
		Rider: newRiderCard(stats.Rider()),
		Stats: []statCard{
			{Title: "Total Races", Value: strconv.Itoa(stats.TotalRaces)},
			{Title: "Total Points", Value: stats.TotalPointsLabel()},
			{Title: "Best Position", Value: stats.BestPositionLabel()},
		},
	}
	s.render(w, http.StatusOK, "rider", body.Rider.Name, site.Riders, body)
}

func (s *Server) races(w http.ResponseWriter, r *http.Request) {
	page := load(r.Context(), state.RacesFailure, s.pageOpts, s.fetcher.ListRaceCircuits)

	body := racesBody{Heading: heading{Title: site.RacesTitle, Subtitle: site.RacesSubtitle}}
	status := http.StatusOK
	switch {
	case page.Phase() == state.Failure:
		body.Failure = s.failure(r, page.Message(), page.Err())
		status = http.StatusBadGateway
	case state.Empty(page):
		body.Empty = &emptyBlock{Title: site.RacesEmptyTitle, Body: site.RacesEmptyBody, Note: site.EmptyAPIOK}
	default:
		races := page.Data()
		body.Heading.Subtitle += fmt.Sprintf(" (%d races)", len(races))
		body.Races = make([]raceCard, 0, len(races))
		for _, rc := range races {
			body.Races = append(body.Races, raceCard{
				ID:       rc.ID,
				Circuit:  rc.CircuitLabel(),
				Date:     rc.DateLabel(),
				SeasonID: rc.SeasonID,
			})
		}
	}
	s.render(w, status, "races", site.RacesTitle, site.Races, body)
}

func (s *Server) standings(w http.ResponseWriter, _ *http.Request) {
	body := standingsBody{
		Heading: heading{Title: site.StandingsTitle, Subtitle: site.StandingsSubtitle},
		Body:    site.StandingsBody,
	}
	s.render(w, http.StatusOK, "standings", site.StandingsTitle, site.Standings, body)
}

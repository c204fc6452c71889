// Package site holds the text and navigation shared by the TUI and the HTML
// front end so both render the same pages.
package site

// Brand is the mark shown at the start of the header.
const (
	BrandIcon = "🏁"
	BrandName = "MotoGP Stats"
	Footer    = "Built with Go & Bubble Tea. MotoGP Stats © 2026"
)

// Page identifies one top-level route.
type Page string

const (
	Home      Page = "home"
	Riders    Page = "riders"
	Races     Page = "races"
	Standings Page = "standings"
)

// NavItem is one entry in the header navigation.
type NavItem struct {
	Page  Page
	Label string
	Path  string
	Key   string
}

// Nav lists the header links in display order.
var Nav = []NavItem{
	{Page: Home, Label: "Home", Path: "/", Key: "1"},
	{Page: Riders, Label: "Riders", Path: "/riders", Key: "2"},
	{Page: Races, Label: "Races", Path: "/races", Key: "3"},
	{Page: Standings, Label: "Standings", Path: "/standings", Key: "4"},
}

// ParsePage maps a stored or typed page name to a Page, defaulting to Home.
func ParsePage(name string) Page {
	for _, item := range Nav {
		if string(item.Page) == name {
			return item.Page
		}
	}
	return Home
}

// Landing page copy.
const (
	HeroTitle    = "Welcome to MotoGP Stats"
	HeroSubtitle = "Explore riders, races, and championship standings from the world of MotoGP racing"
)

// Feature is a landing page card linking to a section.
type Feature struct {
	Page        Page
	Title       string
	Description string
	Action      string
}

// Features are the three section cards on the landing page.
var Features = []Feature{
	{Page: Riders, Title: "Riders", Description: "Browse all MotoGP riders and their career statistics", Action: "View Riders"},
	{Page: Races, Title: "Races", Description: "Check out race results and circuit information", Action: "View Races"},
	{Page: Standings, Title: "Standings", Description: "Current championship standings and rankings", Action: "View Standings"},
}

// Stat is a landing page summary card. Values are placeholders.
type Stat struct {
	Title   string
	Value   string
	Caption string
}

// Placeholder is the value shown by every unbound stat.
const Placeholder = "--"

// Stats are the summary cards on the landing page.
var Stats = []Stat{
	{Title: "Total Riders", Value: Placeholder, Caption: "Active in current season"},
	{Title: "Total Races", Value: Placeholder, Caption: "Circuits worldwide"},
	{Title: "Championships", Value: Placeholder, Caption: "Years of data"},
}

// Section headings and empty states.
const (
	RidersTitle       = "Riders"
	RidersSubtitle    = "Browse all MotoGP riders and their statistics"
	RidersLoading     = "Loading riders..."
	RidersEmptyTitle  = "No Riders Yet"
	RidersEmptyBody   = "The database is empty. Add riders through the ETL process to see them here."
	EmptyAPIOK        = "API endpoint is working correctly ✅"
	RacesTitle        = "Races"
	RacesSubtitle     = "Race circuits and dates for every season"
	RacesLoading      = "Loading races..."
	RacesEmptyTitle   = "No Races Yet"
	RacesEmptyBody    = "The database is empty. Add races through the ETL process to see them here."
	RiderLoading      = "Loading rider..."
	StandingsTitle    = "Standings"
	StandingsSubtitle = "Current championship standings and rankings"
	StandingsBody     = "Coming soon"
	RetryLabel        = "Retry"
	ErrorIcon         = "⚠️"
)

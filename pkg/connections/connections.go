// Package connections implements the "my connections" directory.
package connections

import (
	"strings"

	"github.com/samber/lo"

	"github.com/vango-dev/eventconnect/pkg/nav"
)

// Connection is a person the user is connected with.
type Connection struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	Company           string `json:"company"`
	Location          string `json:"location"`
	Avatar            string `json:"avatar"`
	Match             int    `json:"match"`
	ConnectedDate     string `json:"connectedDate"`
	MutualConnections int    `json:"mutualConnections"`
	LastInteraction   string `json:"lastInteraction"`
}

// Seed returns the directory contents.
func Seed() []Connection {
	return []Connection{
		{ID: "1", Name: "Sarah Johnson", Role: "Tech Lead", Company: "TechCorp", Location: "San Francisco, CA", Avatar: "SJ", Match: 95, ConnectedDate: "2 weeks ago", MutualConnections: 12, LastInteraction: "3 days ago"},
		{ID: "2", Name: "Michael Chen", Role: "Product Manager", Company: "InnovateLabs", Location: "New York, NY", Avatar: "MC", Match: 88, ConnectedDate: "1 month ago", MutualConnections: 8, LastInteraction: "1 week ago"},
		{ID: "3", Name: "Emily Rodriguez", Role: "UX Designer", Company: "DesignHub", Location: "Los Angeles, CA", Avatar: "ER", Match: 82, ConnectedDate: "2 months ago", MutualConnections: 5, LastInteraction: "2 weeks ago"},
		{ID: "4", Name: "David Kim", Role: "Marketing Director", Company: "BrandCo", Location: "Seattle, WA", Avatar: "DK", Match: 79, ConnectedDate: "3 months ago", MutualConnections: 3, LastInteraction: "1 month ago"},
		{ID: "5", Name: "Jessica Martinez", Role: "Software Engineer", Company: "CloudTech", Location: "Austin, TX", Avatar: "JM", Match: 91, ConnectedDate: "1 week ago", MutualConnections: 15, LastInteraction: "2 days ago"},
		{ID: "6", Name: "Robert Wilson", Role: "Data Scientist", Company: "AI Solutions", Location: "Boston, MA", Avatar: "RW", Match: 87, ConnectedDate: "2 weeks ago", MutualConnections: 9, LastInteraction: "5 days ago"},
		{ID: "7", Name: "Amanda Taylor", Role: "Project Manager", Company: "DevTeam", Location: "Chicago, IL", Avatar: "AT", Match: 83, ConnectedDate: "1 month ago", MutualConnections: 6, LastInteraction: "1 week ago"},
		{ID: "8", Name: "James Brown", Role: "CEO", Company: "StartupX", Location: "Miami, FL", Avatar: "JB", Match: 76, ConnectedDate: "2 months ago", MutualConnections: 4, LastInteraction: "3 weeks ago"},
	}
}

// Directory is the connections screen.
type Directory struct {
	people []Connection
	nav    nav.Navigator
	onBack func()
}

// NewDirectory creates a directory over Seed. n and onBack may be nil.
func NewDirectory(n nav.Navigator, onBack func()) *Directory {
	return &Directory{people: Seed(), nav: n, onBack: onBack}
}

// All returns every connection.
func (d *Directory) All() []Connection {
	return append([]Connection(nil), d.people...)
}

// Search returns the connections whose name, role or company contains
// term, ignoring case.
func (d *Directory) Search(term string) []Connection {
	term = strings.ToLower(strings.TrimSpace(term))
	return lo.Filter(d.people, func(c Connection, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Role), term) ||
			strings.Contains(strings.ToLower(c.Company), term)
	})
}

// Message opens the chat screen for a connection. It reports false for
// unknown ids.
func (d *Directory) Message(id string) bool {
	if !lo.ContainsBy(d.people, func(c Connection) bool { return c.ID == id }) {
		return false
	}
	if d.nav != nil {
		d.nav.Navigate(nav.PageChat, "")
	}
	return true
}

// Back leaves the directory.
func (d *Directory) Back() {
	if d.onBack != nil {
		d.onBack()
	}
}

// Package events implements the events screen: the event catalog with its
// tabs and filters, and the create-event dialog.
package events

import (
	"strings"
	"time"
)

// Type tells how an event is attended.
type Type string

const (
	TypeInPerson Type = "in-person"
	TypeOnline   Type = "online"
)

// DateLayout is the layout of Event.Date.
const DateLayout = "Jan 2, 2006"

// Event is a catalog entry.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Location    string   `json:"location,omitempty"`
	Country     string   `json:"country,omitempty"`
	City        string   `json:"city,omitempty"`
	Type        Type     `json:"type"`
	Attendees   int      `json:"attendees"`
	Category    string   `json:"category"`
	Categories  []string `json:"categories,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// Day parses Date in loc.
func (e Event) Day(loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(e.Date), loc)
	return d, err == nil
}

// InCategory reports whether the event is listed under category.
func (e Event) InCategory(category string) bool {
	if e.Category == category {
		return true
	}
	for _, c := range e.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SeedEvents returns the events a new catalog starts with.
func SeedEvents() []Event {
	return []Event{
		{ID: "1", Title: "Global Tech Innovation Summit 2025", Date: "Nov 20, 2025", Time: "9:00 AM", Location: "San Francisco Convention Center, CA", Country: "United States", Type: TypeInPerson, Attendees: 450, Category: "Technology", Image: "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=1080&q=80", Tags: []string{"Innovation", "AI", "Leadership"}, Featured: true},
		{ID: "2", Title: "Advanced Digital Marketing Bootcamp", Date: "Nov 22, 2025", Time: "2:00 PM", Location: "Online via Zoom", Type: TypeOnline, Attendees: 320, Category: "Marketing", Image: "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=1080&q=80", Tags: []string{"SEO", "Content Marketing", "Analytics"}},
		{ID: "3", Title: "Startup Founders & Investors Mixer", Date: "Nov 25, 2025", Time: "6:00 PM", Location: "WeWork Downtown, New York", Country: "United States", City: "New York", Type: TypeInPerson, Attendees: 180, Category: "Networking", Image: "https://images.unsplash.com/photo-1521737604893-d14cc237f11d?w=1080&q=80", Tags: []string{"Startups", "Venture Capital", "Pitching"}},
		{ID: "4", Title: "Deep Learning & Neural Networks Workshop", Date: "Dec 1, 2025", Time: "10:00 AM", Location: "MIT Campus, Cambridge, MA", Country: "United States", Type: TypeInPerson, Attendees: 280, Category: "Technology", Image: "https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=1080&q=80", Tags: []string{"Machine Learning", "Python", "TensorFlow"}, Featured: true},
		{ID: "5", Title: "Contemporary Art & Design Exhibition", Date: "Dec 5, 2025", Time: "7:00 PM", Location: "MoMA Gallery, Manhattan", Country: "United States", City: "New York", Type: TypeInPerson, Attendees: 150, Category: "Creative", Image: "https://images.unsplash.com/photo-1541961017774-22349e4a1262?w=1080&q=80", Tags: []string{"Modern Art", "Design", "Gallery"}},
		{ID: "6", Title: "Jazz & Blues Music Festival", Date: "Dec 10, 2025", Time: "1:00 PM", Location: "Lincoln Center, New York", Country: "United States", City: "New York", Type: TypeInPerson, Attendees: 220, Category: "Entertainment", Image: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=1080&q=80", Tags: []string{"Jazz", "Live Music", "Festival"}},
		{ID: "7", Title: "Blockchain & Cryptocurrency Conference", Date: "Dec 12, 2025", Time: "11:00 AM", Location: "Austin Convention Center, TX", Country: "United States", Type: TypeInPerson, Attendees: 380, Category: "Technology", Image: "https://images.unsplash.com/photo-1639762681485-074b7f938ba0?w=1080&q=80", Tags: []string{"Blockchain", "Crypto", "Web3"}},
		{ID: "8", Title: "Sustainable Business Practices Forum", Date: "Dec 15, 2025", Time: "3:00 PM", Location: "Seattle Conference Center, WA", Country: "United States", Type: TypeInPerson, Attendees: 195, Category: "Business", Image: "https://images.unsplash.com/photo-1454165804606-c3d57bc86b40?w=1080&q=80", Tags: []string{"Sustainability", "ESG", "Green Business"}},
		{ID: "9", Title: "UX/UI Design Masterclass", Date: "Dec 18, 2025", Time: "9:30 AM", Location: "Online via Microsoft Teams", Type: TypeOnline, Attendees: 275, Category: "Design", Image: "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=1080&q=80", Tags: []string{"UX Design", "UI", "User Research"}},
		{ID: "10", Title: "Women in Tech Leadership Summit", Date: "Dec 20, 2025", Time: "8:00 AM", Location: "Silicon Valley Tech Park, CA", Country: "United States", Type: TypeInPerson, Attendees: 320, Category: "Technology", Image: "https://images.unsplash.com/photo-1522071820081-009f0129c71c?w=1080&q=80", Tags: []string{"Diversity", "Leadership", "Women in Tech"}},
	}
}

// trendingIDs are the events shown on the trending tab.
var trendingIDs = []string{"4", "5"}

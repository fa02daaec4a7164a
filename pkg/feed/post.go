// Package feed implements the posts screen: the post list, the create-post
// dialogs, the event countdown and the filters.
package feed

// Post is a feed entry.
type Post struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserInitials string `json:"userInitials"`
	EventName    string `json:"eventName"`
	EventID      string `json:"eventId"`
	Caption      string `json:"caption"`
	Image        string `json:"image"`
	Timestamp    string `json:"timestamp"`
	Likes        int    `json:"likes"`
	Comments     int    `json:"comments"`
	IsOwnPost    bool   `json:"isOwnPost"`
}

// Author is the signed-in user stamped on new posts.
type Author struct {
	ID       string
	Name     string
	Initials string
}

// DefaultAuthor is used when no author is configured.
var DefaultAuthor = Author{ID: "1", Name: "John Doe", Initials: "JD"}

// RecentEvent is an event that can be picked in the select-event mode.
type RecentEvent struct {
	ID   string
	Name string
}

// RecentEvents returns the events offered by the post dialogs.
func RecentEvents() []RecentEvent {
	return []RecentEvent{
		{ID: "1", Name: "Tech Leaders Summit 2025"},
		{ID: "2", Name: "Digital Marketing Conference"},
		{ID: "3", Name: "AI & Innovation Workshop"},
		{ID: "4", Name: "Startup Pitch Night"},
	}
}

// SeedPosts returns the posts a new feed starts with.
func SeedPosts() []Post {
	return []Post{
		{
			ID:           "1",
			UserID:       "1",
			UserName:     "John Doe",
			UserInitials: "JD",
			EventName:    "Tech Leaders Summit 2025",
			EventID:      "1",
			Caption:      "Great insights on AI and leadership at today's summit. Met amazing people and learned so much about the future of technology. Looking forward to implementing these strategies.",
			Image:        "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=1080&q=80",
			Timestamp:    "2 hours ago",
			Likes:        24,
			Comments:     5,
			IsOwnPost:    true,
		},
		{
			ID:           "2",
			UserID:       "2",
			UserName:     "Sarah Johnson",
			UserInitials: "SJ",
			EventName:    "Digital Marketing Conference",
			EventID:      "2",
			Caption:      "Excellent workshop on data-driven marketing strategies. The speakers shared valuable insights on customer engagement and conversion optimization.",
			Image:        "https://images.unsplash.com/photo-1591115765373-5207764f72e7?w=1080&q=80",
			Timestamp:    "5 hours ago",
			Likes:        42,
			Comments:     8,
		},
		{
			ID:           "3",
			UserID:       "3",
			UserName:     "Michael Chen",
			UserInitials: "MC",
			EventName:    "AI & Innovation Workshop",
			EventID:      "3",
			Caption:      "Fascinating deep dive into machine learning applications. The hands-on sessions were particularly valuable for understanding practical implementation.",
			Image:        "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=1080&q=80",
			Timestamp:    "1 day ago",
			Likes:        36,
			Comments:     12,
		},
		{
			ID:           "4",
			UserID:       "4",
			UserName:     "Emily Rodriguez",
			UserInitials: "ER",
			EventName:    "Startup Pitch Night",
			EventID:      "4",
			Caption:      "Inspiring evening watching innovative startups present their ideas. The level of creativity and problem-solving was impressive.",
			Image:        "https://images.unsplash.com/photo-1556761175-b413da4baf72?w=1080&q=80",
			Timestamp:    "2 days ago",
			Likes:        28,
			Comments:     6,
		},
	}
}

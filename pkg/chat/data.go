package chat

// Kind classifies a conversation.
type Kind string

const (
	KindDirect Kind = "direct"
	KindGroup  Kind = "group"
	KindSystem Kind = "system"
)

// Conversation is a chat list entry.
type Conversation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastMessage string `json:"lastMessage"`
	Time        string `json:"time"`
	Unread      int    `json:"unread"`
	Avatar      string `json:"avatar"`
	Online      bool   `json:"online"`
	Kind        Kind   `json:"type"`
	Members     int    `json:"members,omitempty"`
}

// Message is one line of a thread.
type Message struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Avatar string `json:"avatar,omitempty"`
	Text   string `json:"message"`
	Time   string `json:"time"`
	IsMe   bool   `json:"isMe"`
}

// Notification is a system message.
type Notification struct {
	ID      string `json:"id"`
	Kind    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// SeedConversations returns the conversations a new screen starts with.
func SeedConversations() []Conversation {
	return []Conversation{
		{ID: "1", Name: "Sarah Johnson", LastMessage: "See you at the Tech Summit!", Time: "2m ago", Unread: 2, Avatar: "SJ", Online: true, Kind: KindDirect},
		{ID: "2", Name: "Marketing Masterclass Group", LastMessage: "Alex: Thanks for sharing the notes", Time: "15m ago", Avatar: "MM", Kind: KindGroup, Members: 24},
		{ID: "3", Name: "Michael Chen", LastMessage: "Would love to connect after the event", Time: "1h ago", Unread: 1, Avatar: "MC", Online: true, Kind: KindDirect},
		{ID: "4", Name: "AI Workshop Alumni", LastMessage: "New resources shared in the chat", Time: "3h ago", Avatar: "AI", Kind: KindGroup, Members: 156},
		{ID: "5", Name: "EventConnect", LastMessage: "Reminder: Tech Summit starts tomorrow at 9 AM", Time: "5h ago", Avatar: "EC", Kind: KindSystem},
	}
}

// SeedThreads returns the messages of each conversation, keyed by id.
func SeedThreads() map[string][]Message {
	return map[string][]Message{
		"1": {
			{ID: "1", Sender: "Sarah Johnson", Avatar: "SJ", Text: "Hey! Are you going to the Tech Leaders Summit tomorrow?", Time: "10:30 AM"},
			{ID: "2", Sender: "Me", Text: "Yes! I'm really excited. Will you be there?", Time: "10:32 AM", IsMe: true},
			{ID: "3", Sender: "Sarah Johnson", Avatar: "SJ", Text: "Absolutely! I'm speaking on the AI panel in the afternoon. We should grab coffee during the break.", Time: "10:35 AM"},
			{ID: "4", Sender: "Me", Text: "That would be great! I'll be at the opening keynote.", Time: "10:37 AM", IsMe: true},
			{ID: "5", Sender: "Sarah Johnson", Avatar: "SJ", Text: "See you at the Tech Summit!", Time: "10:40 AM"},
		},
	}
}

// SeedNotifications returns the system messages.
func SeedNotifications() []Notification {
	return []Notification{
		{ID: "1", Kind: "event-reminder", Title: "Event Reminder", Message: "Tech Leaders Summit 2025 starts tomorrow at 9:00 AM", Time: "5 hours ago"},
		{ID: "2", Kind: "match", Title: "New Connection Match", Message: "You have 3 new connection recommendations based on your interests", Time: "1 day ago"},
		{ID: "3", Kind: "suggestion", Title: "Event Suggestion", Message: "AI & Machine Learning Workshop matches your interests", Time: "2 days ago"},
	}
}

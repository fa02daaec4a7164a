package feed

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/vango-dev/eventconnect/pkg/catalog"
	"github.com/vango-dev/eventconnect/pkg/nav"
)

// Feed is the ordered post list, newest first. It is safe for concurrent
// use.
type Feed struct {
	mu     sync.RWMutex
	posts  []Post
	logger *slog.Logger
}

// New creates a feed holding posts. A nil slice means SeedPosts.
func New(posts []Post, logger *slog.Logger) *Feed {
	if posts == nil {
		posts = SeedPosts()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		posts:  append([]Post(nil), posts...),
		logger: logger.With("component", "feed"),
	}
}

// Prepend puts p at the top of the feed.
func (f *Feed) Prepend(p Post) {
	f.mu.Lock()
	f.posts = append([]Post{p}, f.posts...)
	f.mu.Unlock()
	f.logger.Info("post added", "id", p.ID, "event", p.EventID)
}

// Delete removes the post with id and reports whether it existed.
func (f *Feed) Delete(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.posts)
	f.posts = lo.Reject(f.posts, func(p Post, _ int) bool { return p.ID == id })
	if len(f.posts) == n {
		return false
	}
	f.logger.Info("post deleted", "id", id)
	return true
}

// Get returns the post with id.
func (f *Feed) Get(id string) (Post, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return lo.Find(f.posts, func(p Post) bool { return p.ID == id })
}

// List returns every post, newest first.
func (f *Feed) List() []Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Post(nil), f.posts...)
}

// Len returns the number of posts.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.posts)
}

// Locator resolves the category and place of a post, usually through the
// event it belongs to.
type Locator func(Post) (category, country, city string)

// Filter returns the posts passing filters. Inactive filters return every
// post; a nil locator treats every post as unlocated.
func (f *Feed) Filter(filters catalog.Filters, locate Locator) []Post {
	posts := f.List()
	if !filters.Active() {
		return posts
	}
	return lo.Filter(posts, func(p Post, _ int) bool {
		var category, country, city string
		if locate != nil {
			category, country, city = locate(p)
		}
		return filters.Match(category, country, city)
	})
}

// OpenEvent shows the detail page of the post's event.
func OpenEvent(n nav.Navigator, p Post) {
	if n == nil {
		return
	}
	n.Navigate(nav.PageEventDetail, p.EventID)
}

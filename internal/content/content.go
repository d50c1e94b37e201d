package content

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
)

//go:embed data/content.json
var raw []byte

type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Page is a static marketing page served under /{slug}.
type Page struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections"`
}

type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	Published string `json:"published"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body"`
}

type Library struct {
	pages []Page
	posts []Post
}

func Load() (*Library, error) {
	var doc struct {
		Pages []Page `json:"pages"`
		Posts []Post `json:"posts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	posts := doc.Posts
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published > posts[j].Published
	})
	return &Library{pages: doc.Pages, posts: posts}, nil
}

func (l *Library) Page(slug string) (Page, bool) {
	for _, p := range l.pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

func (l *Library) Slugs() []string {
	slugs := make([]string, len(l.pages))
	for i, p := range l.pages {
		slugs[i] = p.Slug
	}
	return slugs
}

// Posts returns the newest posts first.
func (l *Library) Posts() []Post {
	out := make([]Post, len(l.posts))
	copy(out, l.posts)
	return out
}

func (l *Library) Post(id string) (Post, bool) {
	for _, p := range l.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

func (l *Library) PostsInCategory(category string) []Post {
	var out []Post
	for _, p := range l.posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (l *Library) PostCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range l.posts {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

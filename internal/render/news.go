package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/format"
)

const (
	defaultPublisher = "Financial News"
	defaultNewsLink  = "https://finance.yahoo.com"
)

// NewsView is a headline card. Every card has a link.
type NewsView struct {
	Initial   string
	Title     string
	Publisher string
	Link      string
	TimeAgo   string
}

// BuildNews fills in missing titles, publishers and links and labels
// each item relative to now.
func BuildNews(items []core.NewsItem, now time.Time) []NewsView {
	if len(items) == 0 {
		return nil
	}

	views := make([]NewsView, 0, len(items))
	for i, item := range items {
		title := item.Title
		if title == "" {
			title = fmt.Sprintf("Financial News Update %d", i+1)
		}
		publisher := item.Publisher
		if publisher == "" {
			publisher = defaultPublisher
		}
		link := item.Link
		if link == "" {
			link = defaultNewsLink
		}

		r, _ := utf8.DecodeRuneInString(title)
		views = append(views, NewsView{
			Initial:   strings.ToUpper(string(r)),
			Title:     title,
			Publisher: publisher,
			Link:      link,
			TimeAgo:   format.RelativeTime(int64(item.Time.Float()), now),
		})
	}
	return views
}

// News renders the news feed as of now.
func (r *Renderer) News(s *core.FinancialSnapshot, now time.Time) (template.HTML, error) {
	var items []core.NewsItem
	if s != nil {
		items = s.News
	}
	return r.execute(SectionNews, BuildNews(items, now))
}

package utils

import (
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceHTMLContent adjusts rendered archive HTML for in-server browsing:
// relative links between generated .md pages are rewritten to server
// routes, external links get safe rel attributes, and images load lazily.
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
	})

	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			s.SetAttr("rel", "noopener noreferrer")
			return
		}
		// Generated pages link to each other with ../questions/{id}/{slug}
		// style paths; the server routes them under /questions/.
		href = strings.TrimPrefix(href, "../")
		href = strings.TrimSuffix(href, ".md")
		if !strings.HasPrefix(href, "/") {
			href = "/" + href
		}
		s.SetAttr("href", href)
	})

	// goquery renders full document tags if missing, we just want the body content
	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}

	return template.HTML(html)
}

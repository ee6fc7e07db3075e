package alert

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// sourceColor is the green the alert template uses for publisher labels.
const sourceColor = "#006621"

// noiseHrefs marks the service's own links inside the notification email.
var noiseHrefs = []string{"google.com/alerts", "mailto:", "#", "support.google"}

// Parser extracts alert records from notification email bodies.
type Parser struct {
	log *zap.Logger
}

// NewParser builds a Parser.
func NewParser(log *zap.Logger) *Parser {
	return &Parser{log: log}
}

// Parse walks the email markup and returns at most ten alert records in
// document order. Rows whose link cannot be resolved, or whose headline is
// too short to be a real story, are skipped. A malformed body yields an
// empty batch, never an error.
func (p *Parser) Parse(body string) []*Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		p.log.Warn("parse email body failed", zap.Error(err))
		return nil
	}

	var records []*Record
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if len(records) >= maxAlerts {
			return false
		}
		rec := recordFromAnchor(row.Find("a[href]").First())
		if rec == nil {
			return true
		}
		rec.Source = sourceLabel(row)
		records = append(records, rec)
		p.log.Debug("found alert", zap.String("headline", rec.Headline))
		return true
	})

	// Some forwarders flatten the table structure; fall back to scanning
	// every anchor in the document.
	if len(records) == 0 {
		p.log.Debug("no alerts in table rows, scanning all anchors")
		doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			if len(records) >= maxAlerts {
				return false
			}
			if rec := recordFromAnchor(link); rec != nil {
				records = append(records, rec)
			}
			return true
		})
	}

	p.log.Info("alerts extracted", zap.Int("count", len(records)))
	return records
}

// recordFromAnchor builds a Record from one anchor element, or nil if the
// anchor is noise, unresolvable, or has a throwaway headline.
func recordFromAnchor(link *goquery.Selection) *Record {
	if link.Length() == 0 {
		return nil
	}
	href, ok := link.Attr("href")
	if !ok || isNoiseHref(href) {
		return nil
	}
	resolved := ResolveURL(href)
	if resolved == "" {
		return nil
	}
	headline := NormalizeHeadline(anchorText(link))
	if len(headline) <= minHeadlineLen {
		return nil
	}
	return &Record{Headline: headline, URL: resolved}
}

func isNoiseHref(href string) bool {
	for _, skip := range noiseHrefs {
		if strings.Contains(href, skip) {
			return true
		}
	}
	return false
}

// anchorText concatenates the stripped text nodes under the anchor,
// joined with single spaces.
func anchorText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if txt := strings.TrimSpace(n.Data); txt != "" {
				parts = append(parts, txt)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return strings.Join(parts, " ")
}

// sourceLabel scans the row for the template's green publisher label.
// Best-effort: an empty string means no label was found.
func sourceLabel(row *goquery.Selection) string {
	var source string
	row.Find("font,span").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if color, ok := el.Attr("color"); ok && color == sourceColor {
			source = strings.TrimSpace(el.Text())
			return false
		}
		if style, ok := el.Attr("style"); ok && strings.Contains(style, "006621") {
			source = strings.TrimSpace(el.Text())
			return false
		}
		return true
	})
	return source
}

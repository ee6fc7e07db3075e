// Package fetcher defines the article retrieval contract shared by the
// fetch strategies.
package fetcher

import "context"

// ArticleContent is the ephemeral result of one article fetch. It is owned
// by the request that produced it and never cached.
type ArticleContent struct {
	Text      string
	Title     string
	Succeeded bool
}

// MinContentLen is the threshold below which extracted text is treated as
// boilerplate rather than usable content.
const MinContentLen = 100

// ArticleFetcher retrieves readable text for a URL. Implementations never
// return an error; every failure mode degrades to a result with
// Succeeded=false so a bad article cannot abort the batch.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) ArticleContent
}

package collector

// Twitter DOM selectors. Isolated here because the generated class soup
// changes whenever Twitter ships a redesign; update these when scraping
// breaks.
const (
	// selTimestamp matches the <time> element inside each tweet's permalink.
	selTimestamp = "a time"

	// selTweet matches the tweet body container. One match per rendered
	// tweet, in document order, same region as selTimestamp.
	selTweet = "div.css-1dbjc4n.r-1iusvr4.r-16y2uox.r-1777fci.r-kzbkwu"

	// attrDatetime holds the ISO-8601 timestamp on the <time> element.
	attrDatetime = "datetime"
)

package phscrape

// Config is the single input object recognized by a crawl run.
type Config struct {
	// StartURLs seeds the crawl frontier.
	StartURLs []string `json:"startUrls"`

	// MaxRequestsPerCrawl is a hard cap on total page fetches for the run.
	// Zero means no cap.
	MaxRequestsPerCrawl int `json:"maxRequestsPerCrawl"`

	// UseBrowser selects the browser-backed extraction path instead of the
	// static-HTML path.
	UseBrowser bool `json:"useBrowser"`

	// ProductHuntAPIToken is accepted but unused by the scraper core.
	// Reserved for a future API-based extraction path.
	ProductHuntAPIToken string `json:"productHuntApiToken"`
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if len(c.StartURLs) == 0 {
		return Errorf(EINVALID, "at least one start URL required")
	}
	if c.MaxRequestsPerCrawl < 0 {
		return Errorf(EINVALID, "max requests per crawl must not be negative")
	}
	return nil
}

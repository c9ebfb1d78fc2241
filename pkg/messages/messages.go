package messages

const (
	BadStatusCodeMsg    = "API returned status code %d on URL %s"
	ChampionNotFound    = "champion %s not found"
	CouldNotFindId      = "couldn't find the %s Id"
	FailedToParseMsg    = "failed to parse API response"
	FiltersNotNil       = "filters can't be nil"
	InvalidMode         = "invalid mode: %s"
	InvalidPosition     = "invalid position: %s"
	InvalidRegion       = "invalid region: %s"
	InvalidTier         = "invalid tier: %s"
	NoDefaultTierlist   = "no default tierlist loaded for mode %s"
	NoVersionsAvailable = "no versions available for %s/%s"
	RequestFailedMsg    = "API request failed on URL %s"
)

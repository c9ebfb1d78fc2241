package dto

// Versions available for a region and mode, newest first.
type VersionsResult struct {
	Region   string   `json:"region"`
	Mode     string   `json:"mode"`
	Latest   string   `json:"latest"`
	Versions []string `json:"versions"`
}

// NewVersionsResult wraps the versions, latest is empty when there is none.
func NewVersionsResult(region string, mode string, versions []string) *VersionsResult {
	result := &VersionsResult{
		Region:   region,
		Mode:     mode,
		Versions: versions,
	}
	if result.Versions == nil {
		result.Versions = []string{}
	}
	if len(versions) > 0 {
		result.Latest = versions[0]
	}
	return result
}

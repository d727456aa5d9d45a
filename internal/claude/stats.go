package claude

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ParseStatsFile reads the aggregate usage stats file (statsCache.json)
// from the log root. A missing file returns (nil, nil): stats-dependent
// metrics degrade to zero rather than failing.
func ParseStatsFile(home string) (*StatsFile, error) {
	path := filepath.Join(home, "statsCache.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var stats StatsFile
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

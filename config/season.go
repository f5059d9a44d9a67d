package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Season is the season.toml configuration used by folder building. The
// validation and generation commands only need the tournament folder they
// are pointed at, so they never load this.
type Season struct {
	Name             string   `toml:"name"`
	Year             int      `toml:"year"`
	TournamentFolder string   `toml:"tournament_folder"`
	TournamentList   string   `toml:"tournament_list"`
	TemplateOJS      string   `toml:"template_ojs"`
	ExtraFiles       []string `toml:"extra_files"`
	UsingDivisions   bool     `toml:"using_divisions"`
}

func LoadSeason(path string) (*Season, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read season config %s: %w", path, err)
	}
	season := &Season{}
	if err := toml.Unmarshal(data, season); err != nil {
		return nil, fmt.Errorf("invalid season config %s: %w", path, err)
	}
	if season.TournamentList == "" {
		return nil, fmt.Errorf("season config %s: tournament_list is required", path)
	}
	if season.TemplateOJS == "" {
		return nil, fmt.Errorf("season config %s: template_ojs is required", path)
	}
	if season.TournamentFolder == "" {
		season.TournamentFolder = "tournaments"
	}
	return season, nil
}

// Package tournament handles the on-disk layout of a tournament: the OJS
// filename convention, the auxiliary-file manifest, and season folder
// building.
package tournament

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
	"github.com/MrGibbage/OJS-Script-maker-NG/rules"
)

const ManifestName = "file_list.txt"

// CheckManifest verifies that every file listed in file_list.txt exists in
// the tournament folder. A missing entry is a startup-time fatal, caught
// before any workbook is read.
func CheckManifest(dir string) error {
	path := filepath.Join(dir, ManifestName)
	f, err := os.Open(path)
	if err != nil {
		return &ojs.Error{Kind: ojs.Structural, Path: path, Msg: "the file_list.txt file is missing in the tournament directory", Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return &ojs.Error{Kind: ojs.Structural, Path: filepath.Join(dir, name), Msg: fmt.Sprintf("the %s file is missing in the tournament directory", name), Err: err}
		}
	}
	return scanner.Err()
}

// ParseFilename extracts the division number from an OJS filename, or
// fails with FilenameFormat before any table is read.
func ParseFilename(name string, r config.Rules) (int, error) {
	m := r.FilenamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, &ojs.Error{Kind: ojs.FilenameFormat, Path: name, Msg: "unexpected OJS filename format"}
	}
	// The division group is "div1" or "div2".
	div := m[4]
	return int(div[len(div)-1] - '0'), nil
}

// DiscoverOJS finds the division workbooks in a tournament folder. A
// leftover Excel lock file means a workbook is still open and is a hard
// stop; anything other than one or two OJS files is likewise a hard stop.
func DiscoverOJS(dir string, r config.Rules) ([]rules.Source, error) {
	locks, err := filepath.Glob(filepath.Join(dir, "~$*.xlsm"))
	if err != nil {
		return nil, err
	}
	if len(locks) > 0 {
		return nil, &ojs.Error{Kind: ojs.Structural, Path: dir, Msg: "found temporary files indicating one or more spreadsheets are open in Excel, close Excel and retry"}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*div*.xlsm"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 || len(matches) > 2 {
		return nil, &ojs.Error{Kind: ojs.Structural, Path: dir, Msg: fmt.Sprintf("there must be one or two OJS files in the directory, found %d", len(matches))}
	}

	var sources []rules.Source
	for _, path := range matches {
		div, err := ParseFilename(filepath.Base(path), r)
		if err != nil {
			return nil, err
		}
		sources = append(sources, rules.Source{Path: path, Division: div})
	}
	return sources, nil
}

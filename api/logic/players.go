/* players.go
 * Contains player name matching and roster line parsing
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"strings"

	"putting-league/api/shared"

	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RosterEntry is one parsed line of an imported roster
type RosterEntry struct {
	Name     string
	Division shared.Division
	Nickname string
}

// MatchPlayerNames checks requested player names against the known player
// list and reports close matches for the rest.
// Preconditions: receives the requested names and the list of known player
// names
// Postconditions: returns the known names in their canonical casing and a map
// of unknown name to its closest suggestions. An unknown name with no similar
// known name maps to an empty slice
func MatchPlayerNames(requested []string, known []string) ([]string, map[string][]string) {
	lookup := make(map[string]string)
	var knownLower []string
	for _, name := range known {
		lower := strings.ToLower(name)
		lookup[lower] = name
		knownLower = append(knownLower, lower)
	}

	var matched []string
	unknown := make(map[string][]string)
	for _, name := range requested {
		lower := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := lookup[lower]; ok {
			matched = append(matched, canonical)
			continue
		}
		// No exact match: rank the known names by similarity so the caller
		// can surface likely typos
		results := fuzzy.RankFind(lower, knownLower)
		suggestions := []string{}
		for i := 0; i < len(results) && i < 3; i++ {
			suggestions = append(suggestions, lookup[results[i].Target])
		}
		unknown[strings.TrimSpace(name)] = suggestions
	}
	return matched, unknown
}

// ParseRosterLine splits one roster line of the form name,division[,nickname]
// where fields may be double quoted.
// Postconditions: returns the parsed entry or an error describing what is
// wrong with the line. Blank lines return a zero entry and no error with
// ok set false
func ParseRosterLine(line string) (RosterEntry, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return RosterEntry{}, false, nil
	}

	commaSplitter, err := splitter.NewSplitter(',', splitter.DoubleQuotes)
	if err != nil {
		return RosterEntry{}, false, fmt.Errorf("failed to build roster splitter: %w", err)
	}
	fields, err := commaSplitter.Split(line)
	if err != nil {
		return RosterEntry{}, false, fmt.Errorf("%w: unbalanced quotes in roster line %q", shared.ErrInvalidInput, line)
	}

	entry := RosterEntry{Division: shared.DivisionAm}
	for i := range fields {
		fields[i] = strings.Trim(strings.TrimSpace(fields[i]), `"`)
	}

	entry.Name = fields[0]
	if entry.Name == "" {
		return RosterEntry{}, false, fmt.Errorf("%w: roster line %q has no player name", shared.ErrInvalidInput, line)
	}
	if len(fields) > 1 && fields[1] != "" {
		div := shared.Division(fields[1])
		if !div.IsValid() {
			return RosterEntry{}, false, fmt.Errorf("%w: unknown division %q in roster line", shared.ErrInvalidInput, fields[1])
		}
		entry.Division = div
	}
	if len(fields) > 2 {
		entry.Nickname = fields[2]
	}
	return entry, true, nil
}

// ParseRoster parses a whole roster text, one entry per line, skipping
// blank and comment lines
func ParseRoster(text string) ([]RosterEntry, error) {
	var entries []RosterEntry
	for n, line := range strings.Split(text, "\n") {
		entry, ok, err := ParseRosterLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: roster contains no players", shared.ErrInvalidInput)
	}
	return entries, nil
}

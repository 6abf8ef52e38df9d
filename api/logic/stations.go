/* stations.go
 * Contains putting station assignment for live matches
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"

	"putting-league/api/shared"
	"putting-league/api/store"
)

// AllocateStation moves a scheduled match in progress on the lowest numbered
// free station.
// Preconditions: receives the tournament's bracket, the match id and the
// tournament's station count. Stations are numbered 1 through stationCount
// and a station is busy while an in progress match holds it
// Postconditions: returns the updated match with its station set, or an error
// when the match is not scheduled or every station is busy
func AllocateStation(b *Bracket, matchID, stationCount int) (*store.Match, error) {
	m, ok := b.Get(matchID)
	if !ok {
		return nil, fmt.Errorf("%w: match %d", shared.ErrNotFound, matchID)
	}
	if m.Status != shared.MatchScheduled {
		return nil, fmt.Errorf("%w: match %d is %s, only scheduled matches can start", shared.ErrInvalidState, matchID, m.Status)
	}

	used := make(map[int]bool)
	for _, other := range b.Matches {
		if other.Status == shared.MatchInProgress && other.Station != nil {
			used[*other.Station] = true
		}
	}

	for s := 1; s <= stationCount; s++ {
		if !used[s] {
			m.Station = intRef(s)
			m.Status = shared.MatchInProgress
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: all %d stations are in use", shared.ErrNoStationAvailable, stationCount)
}

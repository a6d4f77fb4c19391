// Package allocation deals faculty out to venues at random.
package allocation

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MaxFacultyPerVenue is the largest quota a generation may ask for.
const MaxFacultyPerVenue = 2

// Assignment places one faculty member at one venue.
type Assignment struct {
	VenueID   int
	FacultyID int
}

// CapacityError reports that there are fewer eligible faculty than seats.
type CapacityError struct {
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough faculty available: %d needed, but only %d available", e.Required, e.Available)
}

// CheckCapacity fails when venues*perVenue seats cannot be filled from faculty.
func CheckCapacity(venues, faculty, perVenue int) error {
	required := venues * perVenue
	if faculty < required {
		return &CapacityError{Required: required, Available: faculty}
	}
	return nil
}

// Assign shuffles facultyIDs with rng and walks venueIDs in order, giving each
// venue up to perVenue consecutive faculty from the shuffled list. The walk
// stops as soon as the faculty are exhausted, so trailing venues may be left
// without anyone.
func Assign(venueIDs, facultyIDs []int, perVenue int, rng *rand.Rand) []Assignment {
	shuffled := make([]int, len(facultyIDs))
	copy(shuffled, facultyIDs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	size := len(venueIDs) * perVenue
	if len(shuffled) < size {
		size = len(shuffled)
	}
	out := make([]Assignment, 0, size)

	cursor := 0
	for _, venueID := range venueIDs {
		for n := 0; n < perVenue && cursor < len(shuffled); n++ {
			out = append(out, Assignment{VenueID: venueID, FacultyID: shuffled[cursor]})
			cursor++
		}
		if cursor >= len(shuffled) {
			break
		}
	}

	return out
}

// Source is a goroutine safe random source for Assign.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource seeds a Source. A zero seed is replaced by the current time.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Assign(venueIDs, facultyIDs []int, perVenue int) []Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Assign(venueIDs, facultyIDs, perVenue, s.rng)
}

package planner

import (
	"sort"
	"strings"
	"time"
)

// DefaultDateLayout renders the numeric month/day label, e.g. "7. 15.".
// The label carries no year, so an itinerary longer than a year repeats labels.
// Use WithDateLayout with a year component when that matters.
const DefaultDateLayout = "1. 2."

// PlaceEntry is one stop of a day plan.
type PlaceEntry struct {
	ID      int64   `json:"id"`
	Time    string  `json:"time"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// DayPlan is one day of the itinerary. Places are kept sorted by time.
type DayPlan struct {
	Day    int          `json:"day"`
	Date   string       `json:"date"`
	Places []PlaceEntry `json:"places"`
}

// PlaceDraft is a place awaiting confirmation. Coordinates are nil until a location is known.
type PlaceDraft struct {
	Time    string   `json:"time"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// Itinerary owns the ordered day plans of a session and is the only writer of PlaceEntry values.
type Itinerary struct {
	days       []*DayPlan
	current    int
	lastID     int64
	now        func() time.Time
	dateLayout string
}

// ItineraryOption configures an Itinerary
type ItineraryOption func(*Itinerary)

// WithClock replaces time.Now, used for day labels and place identifiers.
func WithClock(now func() time.Time) ItineraryOption {
	return func(it *Itinerary) {
		it.now = now
	}
}

// WithDateLayout sets the time layout used for day labels.
func WithDateLayout(layout string) ItineraryOption {
	return func(it *Itinerary) {
		if layout != "" {
			it.dateLayout = layout
		}
	}
}

// NewItinerary creates an empty itinerary
func NewItinerary(opts ...ItineraryOption) *Itinerary {
	it := &Itinerary{
		now:        time.Now,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// AddDay appends a day numbered len+1, dated len days after now, and makes it current.
func (it *Itinerary) AddDay() DayPlan {
	n := len(it.days)
	date := it.now().AddDate(0, 0, n)

	day := &DayPlan{
		Day:    n + 1,
		Date:   date.Format(it.dateLayout),
		Places: []PlaceEntry{},
	}
	it.days = append(it.days, day)
	it.current = day.Day

	return day.copy()
}

// Len returns the number of days
func (it *Itinerary) Len() int {
	return len(it.days)
}

// CurrentDay returns the selected day number, 0 when there are no days.
func (it *Itinerary) CurrentDay() int {
	return it.current
}

// SelectDay moves the current-day cursor.
func (it *Itinerary) SelectDay(day int) error {
	if _, err := it.day(day); err != nil {
		return err
	}
	it.current = day
	return nil
}

// Days returns a deep copy of all day plans in order.
func (it *Itinerary) Days() []DayPlan {
	out := make([]DayPlan, 0, len(it.days))
	for _, d := range it.days {
		out = append(out, d.copy())
	}
	return out
}

// Day returns a copy of a single day plan.
func (it *Itinerary) Day(day int) (DayPlan, error) {
	d, err := it.day(day)
	if err != nil {
		return DayPlan{}, err
	}
	return d.copy(), nil
}

// BeginAddPlace turns a selected location into a draft with an empty time.
func (it *Itinerary) BeginAddPlace(loc Location) (PlaceDraft, error) {
	if len(it.days) == 0 {
		return PlaceDraft{}, invalid("day", ErrNoDays)
	}

	lat, lng := loc.Lat, loc.Lng
	return PlaceDraft{
		Name:    loc.PlaceName,
		Address: loc.PlaceAddress,
		Lat:     &lat,
		Lng:     &lng,
	}, nil
}

// ConfirmAddPlace validates a draft, stores it under a fresh identifier and re-sorts the day.
func (it *Itinerary) ConfirmAddPlace(day int, draft PlaceDraft) (PlaceEntry, error) {
	d, err := it.day(day)
	if err != nil {
		return PlaceEntry{}, err
	}

	entry, err := draft.validate()
	if err != nil {
		return PlaceEntry{}, err
	}
	entry.ID = it.nextID()

	d.Places = append(d.Places, entry)
	d.sortPlaces()

	return entry, nil
}

// EditPlace rewrites every mutable field of an existing entry and re-sorts the day.
func (it *Itinerary) EditPlace(day int, id int64, draft PlaceDraft) (PlaceEntry, error) {
	d, err := it.day(day)
	if err != nil {
		return PlaceEntry{}, err
	}

	idx := d.indexOf(id)
	if idx < 0 {
		return PlaceEntry{}, invalid("id", ErrPlaceNotFound)
	}

	entry, err := draft.validate()
	if err != nil {
		return PlaceEntry{}, err
	}
	entry.ID = id

	d.Places[idx] = entry
	d.sortPlaces()

	return entry, nil
}

// RemovePlace deletes an entry by identifier. Unknown identifiers are ignored.
func (it *Itinerary) RemovePlace(day int, id int64) error {
	d, err := it.day(day)
	if err != nil {
		return err
	}

	if idx := d.indexOf(id); idx >= 0 {
		d.Places = append(d.Places[:idx], d.Places[idx+1:]...)
	}
	return nil
}

// EntryCount returns the number of places across all days.
func (it *Itinerary) EntryCount() int {
	n := 0
	for _, d := range it.days {
		n += len(d.Places)
	}
	return n
}

func (it *Itinerary) day(day int) (*DayPlan, error) {
	if len(it.days) == 0 {
		return nil, invalid("day", ErrNoDays)
	}
	if day < 1 || day > len(it.days) {
		return nil, invalid("day", ErrDayNotFound)
	}
	return it.days[day-1], nil
}

// nextID derives an identifier from the clock, bumped to stay strictly increasing.
func (it *Itinerary) nextID() int64 {
	id := it.now().UnixMilli()
	if id <= it.lastID {
		id = it.lastID + 1
	}
	it.lastID = id
	return id
}

func (d PlaceDraft) validate() (PlaceEntry, error) {
	if strings.TrimSpace(d.Time) == "" {
		return PlaceEntry{}, invalid("time", ErrTimeRequired)
	}
	hhmm, err := NormalizeTime(d.Time)
	if err != nil {
		return PlaceEntry{}, invalid("time", err)
	}
	if strings.TrimSpace(d.Name) == "" {
		return PlaceEntry{}, invalid("name", ErrNameRequired)
	}
	if d.Lat == nil || d.Lng == nil {
		return PlaceEntry{}, invalid("location", ErrLocationRequired)
	}

	return PlaceEntry{
		Time:    hhmm,
		Name:    d.Name,
		Address: d.Address,
		Lat:     *d.Lat,
		Lng:     *d.Lng,
	}, nil
}

func (d *DayPlan) indexOf(id int64) int {
	for i, p := range d.Places {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (d *DayPlan) sortPlaces() {
	sort.SliceStable(d.Places, func(i, j int) bool {
		return d.Places[i].Time < d.Places[j].Time
	})
}

func (d *DayPlan) copy() DayPlan {
	places := make([]PlaceEntry, len(d.Places))
	copy(places, d.Places)
	return DayPlan{Day: d.Day, Date: d.Date, Places: places}
}

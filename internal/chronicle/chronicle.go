package chronicle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/colonia/internal/calendar"
	"github.com/vovakirdan/colonia/internal/sim"
)

// Entry kinds.
const (
	KindEvent = "event"
	KindDay   = "day"
)

// Entry is one line of the chronicle.
type Entry struct {
	Kind    string `json:"kind"`
	Tick    uint64 `json:"tick"`
	Date    string `json:"date"`
	Message string `json:"message,omitempty"`

	Gold       float64 `json:"gold,omitempty"`
	Food       float64 `json:"food,omitempty"`
	Population int     `json:"population,omitempty"`
}

// Chronicle records the events and daily totals of one city.
type Chronicle struct {
	w    *Writer
	city *sim.City

	mu  sync.Mutex
	err error
}

// Open starts a chronicle for city under dir. Every message pushed to the
// city's event log from now on is archived.
func Open(dir string, city *sim.City) *Chronicle {
	ch := &Chronicle{
		w:    NewWriter(dir, "chronicle"),
		city: city,
	}
	city.Log().AddSink(ch.record)
	return ch
}

// Segment names the file holding the given year.
func Segment(year int) string {
	return "year-" + strconv.Itoa(year)
}

func (ch *Chronicle) record(msg string) {
	d := ch.city.Date()
	ch.keep(ch.w.Write(Segment(d.Year), Entry{
		Kind:    KindEvent,
		Tick:    ch.city.Tick(),
		Date:    d.Short(),
		Message: msg,
	}))
}

// Day archives the totals of the day the city just simulated, under the
// same tick and date as that day's events. Before the first tick it
// archives the founding totals. Files are flushed at each month's end.
func (ch *Chronicle) Day() {
	d, tick := ch.city.Date(), ch.city.Tick()
	if last, ok := ch.city.LastDay(); ok {
		d, tick = last, tick-1
	}
	st := ch.city.Current()
	ch.keep(ch.w.Write(Segment(d.Year), Entry{
		Kind:       KindDay,
		Tick:       tick,
		Date:       d.Short(),
		Gold:       st.Gold,
		Food:       st.FoodProduction,
		Population: st.Population,
	}))
	if d.Day == calendar.DaysInMonth(d.Month)-1 {
		ch.keep(ch.w.Flush())
	}
}

func (ch *Chronicle) keep(err error) {
	if err == nil {
		return
	}
	ch.mu.Lock()
	if ch.err == nil {
		ch.err = err
	}
	ch.mu.Unlock()
}

// Err returns the first write error, if any.
func (ch *Chronicle) Err() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.err
}

// Path returns the file holding the given year.
func (ch *Chronicle) Path(year int) string {
	return ch.w.Path(Segment(year))
}

// Close flushes and closes the current file.
func (ch *Chronicle) Close() error {
	if err := ch.w.Close(); err != nil {
		return err
	}
	return ch.Err()
}

// ReadFile decodes every entry of a chronicle file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes zstd-compressed JSON lines.
func Read(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var entries []Entry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("chronicle: bad line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

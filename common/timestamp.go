package common

import (
	"time"

	"github.com/skyzh/tikv/errors"
)

const timestampLayout = "2006-01-02 15:04:05.999999"

// Timestamp is a microsecond-resolution point in time. It packs into a single
// uint64 using the MySQL packed layout so a fixed-width chunk slot or an
// accumulator slot can hold it without an allocation.
type Timestamp struct {
	t time.Time
}

func NewTimestampFromGoTime(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Microsecond)}
}

func NewTimestampFromString(str string) (Timestamp, error) {
	t, err := time.ParseInLocation(timestampLayout, str, time.UTC)
	if err != nil {
		return Timestamp{}, errors.WithStack(err)
	}
	return Timestamp{t: t}, nil
}

// NewTimestampFromStringForTest parses a Timestamp from a string in MySQL datetime format.
func NewTimestampFromStringForTest(str string) Timestamp {
	ts, err := NewTimestampFromString(str)
	if err != nil {
		panic(err)
	}
	return ts
}

func (ts Timestamp) GoTime() time.Time {
	return ts.t
}

// ToPackedUint encodes the timestamp as
// ((((year*13 + month) << 5 | day) << 17 | hour<<12 | minute<<6 | second) << 24) | microsecond
// which is the layout MySQL uses for packed datetimes.
func (ts Timestamp) ToPackedUint() (uint64, error) {
	year := ts.t.Year()
	if year < 0 || year > 9999 {
		return 0, errors.NewValueOutOfRangeError("timestamp year must be between 0 and 9999")
	}
	ymd := uint64(year*13+int(ts.t.Month()))<<5 | uint64(ts.t.Day())
	hms := uint64(ts.t.Hour())<<12 | uint64(ts.t.Minute())<<6 | uint64(ts.t.Second())
	micro := uint64(ts.t.Nanosecond() / 1000)
	return ((ymd<<17 | hms) << 24) | micro, nil
}

func (ts *Timestamp) FromPackedUint(packed uint64) error {
	micro := packed % (1 << 24)
	ymdhms := packed >> 24
	ymd := ymdhms >> 17
	day := int(ymd & ((1 << 5) - 1))
	ym := ymd >> 5
	month := time.Month(ym % 13)
	year := int(ym / 13)
	hms := ymdhms & ((1 << 17) - 1)
	second := int(hms & ((1 << 6) - 1))
	minute := int((hms >> 6) & ((1 << 6) - 1))
	hour := int(hms >> 12)
	ts.t = time.Date(year, month, day, hour, minute, second, int(micro)*1000, time.UTC)
	return nil
}

func (ts Timestamp) Compare(other Timestamp) int {
	if ts.t.Before(other.t) {
		return -1
	}
	if ts.t.After(other.t) {
		return 1
	}
	return 0
}

func (ts Timestamp) String() string {
	return ts.t.Format(timestampLayout)
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value accepting YYYY-MM-DD dates.
type dateValue time.Time

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	t := time.Time(*d)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (d *dateValue) Set(s string) error {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	*d = dateValue(t)
	return nil
}

func (d *dateValue) Type() string {
	return "date"
}

func (d *dateValue) Time() time.Time {
	return time.Time(*d)
}

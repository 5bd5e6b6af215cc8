package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

// dateValue is a pflag.Value holding a YYYY-MM-DD date at UTC midnight.
type dateValue struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) Set(s string) error {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	d.t = t.UTC()
	d.set = true
	return nil
}

func (d *dateValue) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Type() string {
	return "date"
}

// Ptr returns the date, or nil when the flag was not given.
func (d *dateValue) Ptr() *time.Time {
	if !d.set {
		return nil
	}
	t := d.t
	return &t
}

// levelValue is a pflag.Value accepting DEBUG, INFO, WARN/WARNING or ERROR.
type levelValue struct {
	level string
}

var _ pflag.Value = (*levelValue)(nil)

func newLevelValue(def string) *levelValue {
	return &levelValue{level: def}
}

func (l *levelValue) Set(s string) error {
	if _, err := logger.ParseLevel(s); err != nil {
		return err
	}
	l.level = strings.ToUpper(strings.TrimSpace(s))
	return nil
}

func (l *levelValue) String() string {
	return l.level
}

func (l *levelValue) Type() string {
	return "level"
}

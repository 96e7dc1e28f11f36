package reservation

import (
	"fmt"
	"strconv"
	"strings"
)

// Date é uma data de calendário sem normalização: mês 13 ou dia 32 são aceitos
// e comparados aritmeticamente.
type Date struct {
	Year  int
	Month int
	Day   int
}

func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate lê "YYYY-MM-DD". Só exige três componentes numéricos.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	return Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(d.Month, other.Month)
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(other Date) bool        { return d.compare(other) < 0 }
func (d Date) After(other Date) bool         { return d.compare(other) > 0 }
func (d Date) OnOrAfter(other Date) bool     { return d.compare(other) >= 0 }
func (d Date) BeforeOrEqual(other Date) bool { return d.compare(other) <= 0 }

// Interval é um intervalo fechado [Start, End].
type Interval struct {
	Start Date
	End   Date
}

// NewInterval rejeita intervalos invertidos (Start depois de End).
func NewInterval(start, end Date) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval monta um intervalo a partir de duas datas "YYYY-MM-DD".
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

func (iv Interval) Validate() error {
	if iv.Start.After(iv.End) {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, iv)
	}
	return nil
}

func (iv Interval) Contains(d Date) bool {
	return iv.Start.BeforeOrEqual(d) && d.BeforeOrEqual(iv.End)
}

func (iv Interval) String() string {
	return iv.Start.String() + ".." + iv.End.String()
}

// Overlaps usa limites inclusivos: um checkout no mesmo dia do check-in de
// outra reserva conta como conflito.
func Overlaps(a, b Interval) bool {
	return a.Start.BeforeOrEqual(b.End) && b.Start.BeforeOrEqual(a.End)
}

package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout     = "15:04"
	dbTimeLayout   = "15:04:05"
	minutesPerDay  = 24 * 60
	lastDayMinute  = minutesPerDay - 1
	hoursPerDay    = 24
	minutesPerHour = 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflow")
)

// TimeString время суток в формате HH:MM без привязки к дате и зоне
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM (секунды HH:MM:SS допускаются и отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) == len(dbTimeLayout) {
		s = s[:len(timeLayout)]
	}
	if len(s) != len(timeLayout) {
		return "", ErrInvalidTimeString
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", ErrInvalidTimeString
	}
	return NewTimeString(t), nil
}

// FromMinutes строит TimeString из минут от полуночи, зажимая значение в пределах суток
func FromMinutes(minutes int) TimeString {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > lastDayMinute {
		minutes = lastDayMinute
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour))
}

// Validate проверяет формат
func (ts TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(ts))
	return err
}

// IsZero возвращает true для пустого значения
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Minutes возвращает количество минут от полуночи (0 для некорректного значения)
func (ts TimeString) Minutes() int {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()*minutesPerHour + t.Minute()
}

// AddMinutes прибавляет минуты; выход за пределы суток считается ошибкой
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := ts.Validate(); err != nil {
		return "", err
	}
	total := ts.Minutes() + minutes
	if total < 0 || total >= hoursPerDay*minutesPerHour {
		return "", fmt.Errorf("%w: %s%+d", ErrTimeOverflow, ts, minutes)
	}
	return FromMinutes(total), nil
}

// IsBefore сравнивает время внутри суток
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter сравнивает время внутри суток
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// On возвращает момент времени на календарную дату date в зоне loc
func (ts TimeString) On(date time.Time, loc *time.Location) time.Time {
	m := ts.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/minutesPerHour, m%minutesPerHour, 0, 0, loc)
}

func (ts TimeString) String() string {
	return string(ts)
}

// Value сохраняет значение в колонку TIME как HH:MM:00
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts) + ":00", nil
}

// Scan читает значение колонки TIME
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

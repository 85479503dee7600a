package timeslots

import "errors"

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("timeslots: invalid date, expected YYYY-MM-DD")

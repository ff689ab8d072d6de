package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TruncateToDate descarta a parte de hora do timestamp, mantendo apenas
// a data de calendário em UTC
func TruncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween retorna a diferença entre duas datas em dias de calendário,
// ignorando horas e segundos decorridos
func DaysBetween(from, to time.Time) int {
	fromDate := TruncateToDate(from)
	toDate := TruncateToDate(to)

	return int(toDate.Sub(fromDate).Hours() / 24)
}

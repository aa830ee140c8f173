package core

import (
	"fmt"
	"math"
	"strconv"

	"github.com/qualitywatch/gate-report/internal/types"
)

// Scale factors for converting a raw WORK_DUR minute count into a
// days/hours/minutes display, assuming an 8 hour working day.
const (
	hoursPerWorkDay = 8
	minutesPerHour  = 60
)

// ErrorExplanation renders the human-readable suffix appended to a failing
// condition's status, e.g. " (45.0% is greater than 20%)". The raw actual
// value and threshold are formatted according to the metric's value type.
func ErrorExplanation(actualValue, errorThreshold, comparator, metricType string) string {
	var actual, relation, threshold string

	switch metricType {
	case types.MetricTypeRating:
		actual = ratingToLetter(actualValue)
		relation = "worse"
		threshold = ratingToLetter(errorThreshold)
	case types.MetricTypeWorkDuration:
		actual = workDurationToTime(actualValue)
		relation = comparatorToString(comparator)
		threshold = workDurationToTime(errorThreshold)
	case types.MetricTypePercent:
		actual = percentValue(actualValue)
		relation = comparatorToString(comparator)
		threshold = errorThreshold + "%"
	case types.MetricTypeMillisec:
		actual = actualValue + "ms"
		relation = comparatorToString(comparator)
		threshold = errorThreshold + "ms"
	default:
		actual = actualValue
		relation = comparatorToString(comparator)
		threshold = errorThreshold
	}

	return fmt.Sprintf(" (%s is %s than %s)", actual, relation, threshold)
}

// ratingToLetter converts a numeric rating "1".."5" to its letter grade
// "A".."E". Anything else passes through unchanged.
func ratingToLetter(rating string) string {
	switch rating {
	case "1":
		return "A"
	case "2":
		return "B"
	case "3":
		return "C"
	case "4":
		return "D"
	case "5":
		return "E"
	default:
		return rating
	}
}

// workDurationToTime converts a raw minute count into "<d>d <h>h <m>min".
// Unparseable input passes through unchanged.
func workDurationToTime(raw string) string {
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%dd %dh %dmin",
		minutes/minutesPerHour/hoursPerWorkDay,
		minutes/minutesPerHour%hoursPerWorkDay,
		minutes%minutesPerHour)
}

// percentValue rounds a raw percentage half-up to one decimal place and
// appends "%". Unparseable input passes through unchanged.
func percentValue(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return strconv.FormatFloat(math.Floor(v*10+0.5)/10, 'f', 1, 64) + "%"
}

// comparatorToString maps the wire comparator to prose. "GT" reads as
// "greater"; everything else, including "LT", reads as "less".
func comparatorToString(comparator string) string {
	if comparator == types.ComparatorGreaterThan {
		return "greater"
	}
	return "less"
}

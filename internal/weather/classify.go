package weather

import "strconv"

// Classification is the display triple for a WMO weather code.
type Classification struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Background  string `json:"background,omitempty"`
}

// UnknownIcon is used for codes missing from the table.
const UnknownIcon = "fas fa-question-circle"

var wmoCodes = map[int]Classification{
	0:  {"clear", "fas fa-sun", "clear-sky"},
	1:  {"mainly clear", "fas fa-sun", "clear-sky"},
	2:  {"partly cloudy", "fas fa-cloud-sun", "few-clouds"},
	3:  {"overcast", "fas fa-cloud", "overcast-clouds"},
	45: {"fog", "fas fa-smog", "mist"},
	48: {"depositing rime fog", "fas fa-smog", "mist"},
	51: {"light drizzle", "fas fa-cloud-rain", "shower-rain"},
	53: {"moderate drizzle", "fas fa-cloud-rain", "shower-rain"},
	55: {"dense drizzle", "fas fa-cloud-rain", "shower-rain"},
	56: {"light freezing drizzle", "fas fa-cloud-rain", "rain"},
	57: {"dense freezing drizzle", "fas fa-cloud-rain", "rain"},
	61: {"slight rain", "fas fa-cloud-showers-heavy", "rain"},
	63: {"moderate rain", "fas fa-cloud-showers-heavy", "rain"},
	65: {"heavy rain", "fas fa-cloud-showers-heavy", "rain"},
	66: {"light freezing rain", "fas fa-icicles", "rain"},
	67: {"heavy freezing rain", "fas fa-icicles", "rain"},
	71: {"slight snow fall", "fas fa-snowflake", "snow"},
	73: {"moderate snow fall", "fas fa-snowflake", "snow"},
	75: {"heavy snow fall", "fas fa-snowflake", "snow"},
	77: {"snow grains", "fas fa-igloo", "snow"},
	80: {"slight rain showers", "fas fa-cloud-sun-rain", "shower-rain"},
	81: {"moderate rain showers", "fas fa-cloud-sun-rain", "rain"},
	82: {"violent rain showers", "fas fa-cloud-showers-heavy", "rain"},
	85: {"slight snow showers", "fas fa-snowflake", "snow"},
	86: {"heavy snow showers", "fas fa-snowflake", "snow"},
	95: {"thunderstorm", "fas fa-bolt", "thunderstorm"},
	96: {"thunderstorm with slight hail", "fas fa-cloud-bolt", "thunderstorm"},
	99: {"thunderstorm with heavy hail", "fas fa-cloud-bolt", "thunderstorm"},
}

// Classify maps a weather code to its description, icon and background.
// It is total: codes outside the table get a generic result.
func Classify(code int) Classification {
	if c, ok := wmoCodes[code]; ok {
		return c
	}
	return Classification{
		Description: "unknown code " + strconv.Itoa(code),
		Icon:        UnknownIcon,
	}
}

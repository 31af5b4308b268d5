package bestiary

import (
	"encoding/json"
	"strconv"
)

const (
	Unknown                = "Unknown"
	DescriptionUnavailable = "Descripción no disponible."
)

// Stat is a statistic that is an integer when the bestiary prints a plain number
// and free text otherwise ("Unknown", "5 (13)", "1d6+1").
type Stat struct {
	Text    string
	Number  int
	Numeric bool
}

func TextStat(text string) Stat {
	return Stat{Text: text}
}

func NumberStat(n int) Stat {
	return Stat{Text: strconv.Itoa(n), Number: n, Numeric: true}
}

// ParseStat keeps value as text unless it is made only of ascii digits.
func ParseStat(value string) Stat {
	if !isDigits(value) {
		return TextStat(value)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return TextStat(value)
	}
	return NumberStat(n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (s Stat) String() string {
	return s.Text
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return json.Marshal(s.Number)
	}
	return json.Marshal(s.Text)
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = NumberStat(n)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = TextStat(text)
	return nil
}

// Record is the fixed schema every monster lookup produces, no field is ever omitted.
type Record struct {
	Name              string `json:"nombre"`
	ArmorClass        Stat   `json:"armor_class"`
	HitDice           string `json:"hit_dice"`
	NumberOfAttacks   string `json:"number_of_attacks"`
	Damage            string `json:"damage"`
	Movement          string `json:"movement"`
	NumberOfAppearing string `json:"number_of_appearing"`
	SaveAs            string `json:"save_as"`
	Morale            Stat   `json:"morale"`
	TreasureType      string `json:"treasure_type"`
	XP                Stat   `json:"xp"`
	Description       string `json:"descripcion"`
}

// Stats maps a normalized stats table label to its text.
type Stats map[string]string

func (s Stats) get(key string) string {
	value, ok := s[key]
	if !ok {
		return Unknown
	}
	return value
}

func (s Stats) stat(key string) Stat {
	value, ok := s[key]
	if !ok {
		return TextStat(Unknown)
	}
	return ParseStat(value)
}

// MapRecord assembles the output schema from a parsed stats table.
// name is used verbatim, absent rows become "Unknown".
func MapRecord(name string, stats Stats, description string) Record {
	return Record{
		Name:              name,
		ArmorClass:        stats.stat("armor_class"),
		HitDice:           stats.get("hit_dice"),
		NumberOfAttacks:   stats.get("no_of_attacks"),
		Damage:            stats.get("damage"),
		Movement:          stats.get("movement"),
		NumberOfAppearing: stats.get("no_appearing"),
		SaveAs:            stats.get("save_as"),
		Morale:            stats.stat("morale"),
		TreasureType:      stats.get("treasure_type"),
		XP:                stats.stat("xp"),
		Description:       description,
	}
}

// Entry is one monster link found on the bestiary index.
type Entry struct {
	Name string `json:"nombre"`
	Path string `json:"ruta"`
}

package domain

// Status represents todo progress. It is a flat tag: any value may follow any other.
type Status string

const (
	StatusNotStarted  Status = "NOT_STARTED"
	StatusJustStarted Status = "JUST_STARTED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusPending     Status = "PENDING"
	StatusOneday      Status = "ONEDAY"
	StatusDone        Status = "DONE"
)

// Statuses lists every status in its natural order
var Statuses = []Status{
	StatusNotStarted, StatusJustStarted, StatusInProgress, StatusPending, StatusOneday, StatusDone,
}

// IsValid validates if the status is valid
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Weather is the weather tag of a journal
type Weather string

const (
	WeatherSunny        Weather = "SUNNY"
	WeatherPartlyCloudy Weather = "PARTLY_CLOUDY"
	WeatherCloudy       Weather = "CLOUDY"
	WeatherLightRain    Weather = "LIGHT_RAIN"
	WeatherHeavyRain    Weather = "HEAVY_RAIN"
	WeatherSleet        Weather = "SLEET"
	WeatherSnow         Weather = "SNOW"
	WeatherHeatWave     Weather = "HEAT_WAVE"
	WeatherColdWave     Weather = "COLD_WAVE"
	WeatherWindy        Weather = "WINDY"
	WeatherFoggy        Weather = "FOGGY"
	WeatherThunder      Weather = "THUNDER"
	WeatherTyphoon      Weather = "TYPHOON"
)

var Weathers = []Weather{
	WeatherSunny, WeatherPartlyCloudy, WeatherCloudy, WeatherLightRain, WeatherHeavyRain, WeatherSleet,
	WeatherSnow, WeatherHeatWave, WeatherColdWave, WeatherWindy, WeatherFoggy, WeatherThunder, WeatherTyphoon,
}

func (w Weather) IsValid() bool {
	for _, v := range Weathers {
		if w == v {
			return true
		}
	}
	return false
}

// Feeling is the feeling tag of a journal
type Feeling string

const (
	FeelingNeutral    Feeling = "NEUTRAL"
	FeelingCalm       Feeling = "CALM"
	FeelingSad        Feeling = "SAD"
	FeelingDepressed  Feeling = "DEPRESSED"
	FeelingMelancholy Feeling = "MELANCHOLY"
	FeelingAngry      Feeling = "ANGRY"
	FeelingPassionate Feeling = "PASSIONATE"
	FeelingHappy      Feeling = "HAPPY"
	FeelingJoyful     Feeling = "JOYFUL"
	FeelingTired      Feeling = "TIRED"
	FeelingIrritated  Feeling = "IRRITATED"
	FeelingSurprised  Feeling = "SURPRISED"
	FeelingInterested Feeling = "INTERESTED"
)

var Feelings = []Feeling{
	FeelingNeutral, FeelingCalm, FeelingSad, FeelingDepressed, FeelingMelancholy, FeelingAngry,
	FeelingPassionate, FeelingHappy, FeelingJoyful, FeelingTired, FeelingIrritated, FeelingSurprised,
	FeelingInterested,
}

func (f Feeling) IsValid() bool {
	for _, v := range Feelings {
		if f == v {
			return true
		}
	}
	return false
}

// ColorType is one of the named pastel colors a category can take
type ColorType string

const (
	ColorPastelPink    ColorType = "PASTEL_PINK"
	ColorBabyBlue      ColorType = "BABY_BLUE"
	ColorMintGreen     ColorType = "MINT_GREEN"
	ColorLavender      ColorType = "LAVENDER"
	ColorPeach         ColorType = "PEACH"
	ColorSkyBlue       ColorType = "SKY_BLUE"
	ColorPaleYellow    ColorType = "PALE_YELLOW"
	ColorSoftLilac     ColorType = "SOFT_LILAC"
	ColorPastelOrange  ColorType = "PASTEL_ORANGE"
	ColorPowderBlue    ColorType = "POWDER_BLUE"
	ColorLightCoral    ColorType = "LIGHT_CORAL"
	ColorPaleGreen     ColorType = "PALE_GREEN"
	ColorCream         ColorType = "CREAM"
	ColorMistyRose     ColorType = "MISTY_ROSE"
	ColorLightCyan     ColorType = "LIGHT_CYAN"
	ColorPaleAqua      ColorType = "PALE_AQUA"
	ColorBlushPink     ColorType = "BLUSH_PINK"
	ColorPeriwinkle    ColorType = "PERIWINKLE"
	ColorLightLavender ColorType = "LIGHT_LAVENDER"
	ColorPastelTeal    ColorType = "PASTEL_TEAL"
)

// FallbackColorHex is used when a category cannot be resolved
const FallbackColorHex = "#E2E8F0"

var colorHex = map[ColorType]string{
	ColorPastelPink:    "#FFD1DC",
	ColorBabyBlue:      "#AEDFF7",
	ColorMintGreen:     "#BFFCC6",
	ColorLavender:      "#E3D1FF",
	ColorPeach:         "#FFE0B2",
	ColorSkyBlue:       "#C2F0FF",
	ColorPaleYellow:    "#FFFACD",
	ColorSoftLilac:     "#D8B7DD",
	ColorPastelOrange:  "#FFD8B1",
	ColorPowderBlue:    "#B0E0E6",
	ColorLightCoral:    "#F8C8C8",
	ColorPaleGreen:     "#D5F4E6",
	ColorCream:         "#FFFDD0",
	ColorMistyRose:     "#FFE4E1",
	ColorLightCyan:     "#E0FFFF",
	ColorPaleAqua:      "#CFFFE5",
	ColorBlushPink:     "#F9D5D3",
	ColorPeriwinkle:    "#CCCCFF",
	ColorLightLavender: "#E6E6FA",
	ColorPastelTeal:    "#A0E7E5",
}

func (c ColorType) IsValid() bool {
	_, ok := colorHex[c]
	return ok
}

// Hex returns the display color, FallbackColorHex for unknown values
func (c ColorType) Hex() string {
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return FallbackColorHex
}

// AnniversaryType distinguishes public holidays from personal days
type AnniversaryType string

const (
	AnniversaryHoliday AnniversaryType = "HOLIDAY"
	AnniversarySpecial AnniversaryType = "SPECIAL"
)

func (t AnniversaryType) IsValid() bool {
	return t == AnniversaryHoliday || t == AnniversarySpecial
}

// AnniversaryWeight is the three-tier importance of an anniversary
type AnniversaryWeight string

const (
	WeightLow    AnniversaryWeight = "LOW"
	WeightMedium AnniversaryWeight = "MEDIUM"
	WeightHigh   AnniversaryWeight = "HIGH"
)

func (w AnniversaryWeight) IsValid() bool {
	switch w {
	case WeightLow, WeightMedium, WeightHigh:
		return true
	default:
		return false
	}
}

// FontType is the display font selected in the settings
type FontType string

const (
	FontGowunDodum    FontType = "GowunDodum"
	FontHahmlet       FontType = "Hahmlet"
	FontYESMyoungjo   FontType = "YESMyoungjo"
	FontMaruBuri      FontType = "MaruBuri"
	FontFreesentation FontType = "Freesentation"
	FontMinSans       FontType = "MinSans"
	FontSCoreDream    FontType = "SCoreDream"
	FontGangwonEdu    FontType = "GangwonEdu"
	FontOmyu          FontType = "Omyu"
)

var FontTypes = []FontType{
	FontGowunDodum, FontHahmlet, FontYESMyoungjo, FontMaruBuri, FontFreesentation,
	FontMinSans, FontSCoreDream, FontGangwonEdu, FontOmyu,
}

func (f FontType) IsValid() bool {
	for _, v := range FontTypes {
		if f == v {
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// 入力値の上限（クライアントのフォームと同じ値）
const (
	MaxWeatherComment   = 20
	MaxFeelingComment   = 30
	MaxJournalContents  = 1000
	MaxJournalMemo      = 100
	MaxImagesPerJournal = 2
	MaxTodoContents     = 30
	MaxTodoMemo         = 50
	MaxCategoryName     = 20
	MaxCategories       = 20
	MaxAnniversaryName  = 30
	MaxProfileRemark    = 200
)

// WeatherComment is the optional weather tag of a journal
type WeatherComment struct {
	Weather Weather `json:"weather"`
	Comment string  `json:"comment"`
}

// FeelingComment is the optional feeling tag of a journal
type FeelingComment struct {
	Feeling Feeling `json:"feeling"`
	Comment string  `json:"comment"`
}

// Journal is a diary entry. At most one journal exists per date.
type Journal struct {
	ID             string          `json:"id"`
	Date           Date            `json:"date"`
	WeatherComment *WeatherComment `json:"weatherComment,omitempty"`
	FeelingComment *FeelingComment `json:"feelingComment,omitempty"`
	Contents       string          `json:"contents"`
	ImageIDs       []string        `json:"imageIds"`
	Memo           string          `json:"memo"`
	Saved          bool            `json:"saved"`
	Locked         bool            `json:"locked"`
	RegisteredOn   time.Time       `json:"registeredOn"`
	ModifiedOn     time.Time       `json:"modifiedOn"`
}

// Feeling returns the feeling tag, or "" when the journal has none
func (j Journal) Feeling() Feeling {
	if j.FeelingComment == nil {
		return ""
	}
	return j.FeelingComment.Feeling
}

// Todo is a task at a point in time (IsPeriod=false) or over a time range.
// StartDateTime and EndDateTime are naive wall-clock times, see ParseDateTime.
type Todo struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"categoryId"`
	Contents      string    `json:"contents"`
	Memo          string    `json:"memo"`
	IsPeriod      bool      `json:"isPeriod"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Status        Status    `json:"status"`
	RegisteredOn  time.Time `json:"registeredOn"`
}

// StartDate is the calendar day the todo belongs to
func (t Todo) StartDate() Date {
	return DateOf(t.StartDateTime)
}

// Category groups todos. Removed categories stay referenced by old todos.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ColorType ColorType `json:"colorType"`
	OrderNo   int       `json:"orderNo"`
	Removed   bool      `json:"removed"`
}

// Anniversary recurs every year on the month/day of Date
type Anniversary struct {
	ID           string            `json:"id"`
	DateType     AnniversaryType   `json:"dateType"`
	Date         Date              `json:"date"`
	Name         string            `json:"name"`
	Weight       AnniversaryWeight `json:"weight"`
	RegisteredOn time.Time         `json:"registeredOn"`
	ModifiedOn   time.Time         `json:"modifiedOn"`
}

// OccursOn reports whether the anniversary falls on d, ignoring the year.
// A February 29 anniversary is observed on February 28 in common years.
func (a Anniversary) OccursOn(d Date) bool {
	if a.Date.IsZero() {
		return false
	}
	if a.Date.Month == time.February && a.Date.Day == 29 && !IsLeapYear(d.Year) {
		return d.Month == time.February && d.Day == 28
	}
	return a.Date.Month == d.Month && a.Date.Day == d.Day
}

// Profile is the single owner of the journal, with display settings
type Profile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	BirthDate        Date      `json:"birthDate"`
	PhoneNumber      string    `json:"phoneNumber"`
	Remark           string    `json:"remark"`
	PasswordHash     string    `json:"-"`
	NotificationTime string    `json:"notificationTime"`
	IsDark           bool      `json:"isDark"`
	FontType         FontType  `json:"fontType"`
	RegisteredOn     time.Time `json:"registeredOn"`
	ModifiedOn       time.Time `json:"modifiedOn"`
}

// DefaultNotificationTime is used until the owner picks one
const DefaultNotificationTime = "21:00"

// NewProfile returns an unsaved profile with default settings
func NewProfile() *Profile {
	return &Profile{
		NotificationTime: DefaultNotificationTime,
		FontType:         FontGowunDodum,
		RegisteredOn:     time.Now(),
	}
}

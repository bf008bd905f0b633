package usecase

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"lifelog/src/domain"
)

// ErrValidation is wrapped by every input error so handlers can answer 400
var ErrValidation = errors.New("validation failed")

var (
	ErrJournalNotFound      = fmt.Errorf("journal: %w", domain.ErrNotFound)
	ErrTodoNotFound         = fmt.Errorf("todo: %w", domain.ErrNotFound)
	ErrCategoryNotFound     = fmt.Errorf("category: %w", domain.ErrNotFound)
	ErrAnniversaryNotFound  = fmt.Errorf("anniversary: %w", domain.ErrNotFound)
	ErrProfileNotFound      = fmt.Errorf("profile: %w", domain.ErrNotFound)
	ErrJournalAlreadyExists = fmt.Errorf("DATA_ALREADY_EXISTS: journal for this date: %w", domain.ErrDuplicate)
)

var (
	ErrInvalidDate            = invalid("date is required and must be YYYY-MM-DD")
	ErrDateOutOfWindow        = invalid("date must be between the service start date and today")
	ErrInvalidJournalContents = invalid(fmt.Sprintf("contents must be at most %d characters", domain.MaxJournalContents))
	ErrInvalidJournalMemo     = invalid(fmt.Sprintf("memo must be at most %d characters", domain.MaxJournalMemo))
	ErrInvalidWeather         = invalid("weather is not a known value")
	ErrInvalidWeatherComment  = invalid(fmt.Sprintf("weather comment must be at most %d characters", domain.MaxWeatherComment))
	ErrInvalidFeeling         = invalid("feeling is not a known value")
	ErrInvalidFeelingComment  = invalid(fmt.Sprintf("feeling comment must be at most %d characters", domain.MaxFeelingComment))
	ErrTooManyImages          = invalid(fmt.Sprintf("a journal can have at most %d images", domain.MaxImagesPerJournal))

	ErrInvalidTodoContents = invalid(fmt.Sprintf("contents is required and must be at most %d characters", domain.MaxTodoContents))
	ErrInvalidTodoMemo     = invalid(fmt.Sprintf("memo must be at most %d characters", domain.MaxTodoMemo))
	ErrInvalidStatus       = invalid("status is not a known value")
	ErrInvalidTodoTime     = invalid("startDateTime is required")
	ErrInvalidTodoPeriod   = invalid("endDateTime must not be before startDateTime")
	ErrCategoryRequired    = invalid("categoryId is required")
	ErrCategoryRemoved     = invalid("category has been removed")

	ErrInvalidCategoryName = invalid(fmt.Sprintf("name is required and must be at most %d characters", domain.MaxCategoryName))
	ErrInvalidColorType    = invalid("colorType is not a known value")
	ErrCategoryLimit       = invalid(fmt.Sprintf("at most %d categories can be active", domain.MaxCategories))
	ErrInvalidOrder        = invalid("ids must list distinct existing categories")

	ErrInvalidAnniversaryName   = invalid(fmt.Sprintf("name is required and must be at most %d characters", domain.MaxAnniversaryName))
	ErrInvalidAnniversaryType   = invalid("dateType must be HOLIDAY or SPECIAL")
	ErrInvalidAnniversaryWeight = invalid("weight must be LOW, MEDIUM or HIGH")

	ErrInvalidProfileName    = invalid("name is required and must be at most 50 characters")
	ErrInvalidRemark         = invalid(fmt.Sprintf("remark must be at most %d characters", domain.MaxProfileRemark))
	ErrInvalidNotification   = invalid("notificationTime must be HH:MM")
	ErrInvalidFontType       = invalid("fontType is not a known value")
	ErrInvalidBirthDate      = invalid("birthDate must not be in the future")
	ErrInvalidStatsStrategy  = invalid("strategy must be MONTHLY, QUARTERLY or YEARLY")
	ErrInvalidStatsPeriod    = invalid("period does not match the strategy")
	ErrInvalidCursorMovement = invalid("offset must be between -1200 and 1200")
)

const maxProfileName = 50

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// tooLong counts characters, not bytes
func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// mapNotFound replaces a repository miss with the entity-specific error
func mapNotFound(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}

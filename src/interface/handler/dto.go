package handler

// WeatherCommentDTO represents the weather tag of a journal
type WeatherCommentDTO struct {
	Weather string `json:"weather" validate:"required,weather"`
	Comment string `json:"comment" validate:"max=20,safe_text"`
}

// FeelingCommentDTO represents the feeling tag of a journal
type FeelingCommentDTO struct {
	Feeling string `json:"feeling" validate:"required,feeling"`
	Comment string `json:"comment" validate:"max=30,safe_text"`
}

// CreateJournalRequestDTO represents HTTP request for creating a journal
type CreateJournalRequestDTO struct {
	Date           string             `json:"date" validate:"required,ymd"`
	WeatherComment *WeatherCommentDTO `json:"weatherComment"`
	FeelingComment *FeelingCommentDTO `json:"feelingComment"`
	Contents       string             `json:"contents" validate:"max=1000,safe_text"`
	ImageIDs       []string           `json:"imageIds" validate:"max=2,dive,required,max=200"`
	Memo           string             `json:"memo" validate:"max=100,safe_text"`
	Saved          bool               `json:"saved"`
	Locked         bool               `json:"locked"`
}

// UpdateJournalRequestDTO represents HTTP request for updating a journal.
// Omitted fields are kept; clearWeather/clearFeeling remove the tags.
type UpdateJournalRequestDTO struct {
	Date           *string            `json:"date,omitempty" validate:"omitempty,ymd"`
	WeatherComment *WeatherCommentDTO `json:"weatherComment,omitempty"`
	ClearWeather   bool               `json:"clearWeather"`
	FeelingComment *FeelingCommentDTO `json:"feelingComment,omitempty"`
	ClearFeeling   bool               `json:"clearFeeling"`
	Contents       *string            `json:"contents,omitempty" validate:"omitempty,max=1000,safe_text"`
	ImageIDs       []string           `json:"imageIds,omitempty" validate:"omitempty,max=2,dive,required,max=200"`
	Memo           *string            `json:"memo,omitempty" validate:"omitempty,max=100,safe_text"`
	Saved          *bool              `json:"saved,omitempty"`
	Locked         *bool              `json:"locked,omitempty"`
}

// LockJournalRequestDTO represents HTTP request for toggling the lock
type LockJournalRequestDTO struct {
	Locked *bool `json:"locked" validate:"required"`
}

// ChangeImagesRequestDTO represents HTTP request for replacing journal images
type ChangeImagesRequestDTO struct {
	ImageIDs []string `json:"imageIds" validate:"max=2,dive,required,max=200"`
}

// DateRequestDTO carries the reference date of a seek or copy
type DateRequestDTO struct {
	Date string `json:"date" validate:"required,ymd"`
}

// CreateTodoRequestDTO represents HTTP request for creating a todo.
// Date times are YYYY-MM-DDTHH:MM wall clock, or RFC3339.
type CreateTodoRequestDTO struct {
	CategoryID    string `json:"categoryId" validate:"required,uuid"`
	Contents      string `json:"contents" validate:"required,max=30,safe_text"`
	Memo          string `json:"memo" validate:"max=50,safe_text"`
	IsPeriod      bool   `json:"isPeriod"`
	StartDateTime string `json:"startDateTime" validate:"required"`
	EndDateTime   string `json:"endDateTime"`
	Status        string `json:"status" validate:"omitempty,todo_status"`
}

// UpdateTodoRequestDTO represents HTTP request for updating a todo
type UpdateTodoRequestDTO struct {
	CategoryID    *string `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Contents      *string `json:"contents,omitempty" validate:"omitempty,max=30,safe_text"`
	Memo          *string `json:"memo,omitempty" validate:"omitempty,max=50,safe_text"`
	IsPeriod      *bool   `json:"isPeriod,omitempty"`
	StartDateTime *string `json:"startDateTime,omitempty"`
	EndDateTime   *string `json:"endDateTime,omitempty"`
	Status        *string `json:"status,omitempty" validate:"omitempty,todo_status"`
}

// ChangeStatusRequestDTO represents HTTP request for changing a todo status
type ChangeStatusRequestDTO struct {
	Status string `json:"status" validate:"required,todo_status"`
}

// CreateCategoryRequestDTO represents HTTP request for creating a category
type CreateCategoryRequestDTO struct {
	Name      string `json:"name" validate:"required,max=20,safe_text"`
	ColorType string `json:"colorType" validate:"required,color_type"`
}

// UpdateCategoryRequestDTO represents HTTP request for updating a category
type UpdateCategoryRequestDTO struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=20,safe_text"`
	ColorType *string `json:"colorType,omitempty" validate:"omitempty,color_type"`
}

// ReorderCategoriesRequestDTO lists category ids in their new order
type ReorderCategoriesRequestDTO struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
}

// CategoryListQueryDTO represents HTTP query parameters for listing categories
type CategoryListQueryDTO struct {
	IncludeRemoved bool `form:"includeRemoved"`
}

// CreateAnniversaryRequestDTO represents HTTP request for creating an anniversary
type CreateAnniversaryRequestDTO struct {
	DateType string `json:"dateType" validate:"required,anniversary_type"`
	Date     string `json:"date" validate:"required,ymd"`
	Name     string `json:"name" validate:"required,max=30,safe_text"`
	Weight   string `json:"weight" validate:"omitempty,anniversary_weight"`
}

// UpdateAnniversaryRequestDTO represents HTTP request for updating an anniversary
type UpdateAnniversaryRequestDTO struct {
	DateType *string `json:"dateType,omitempty" validate:"omitempty,anniversary_type"`
	Date     *string `json:"date,omitempty" validate:"omitempty,ymd"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=30,safe_text"`
	Weight   *string `json:"weight,omitempty" validate:"omitempty,anniversary_weight"`
}

// SaveProfileRequestDTO represents HTTP request for saving the profile
type SaveProfileRequestDTO struct {
	Name        string `json:"name" validate:"required,max=50,safe_text"`
	BirthDate   string `json:"birthDate" validate:"omitempty,ymd"`
	PhoneNumber string `json:"phoneNumber" validate:"phone"`
	Remark      string `json:"remark" validate:"max=200,safe_text"`
}

// ChangeSettingsRequestDTO represents HTTP request for changing display settings
type ChangeSettingsRequestDTO struct {
	NotificationTime *string `json:"notificationTime,omitempty" validate:"omitempty,hhmm"`
	IsDark           *bool   `json:"isDark,omitempty"`
	FontType         *string `json:"fontType,omitempty" validate:"omitempty,font_type"`
}

// ChangePasswordRequestDTO represents HTTP request for changing the password
type ChangePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=72"`
	NewPassword     string `json:"newPassword" validate:"required,min=4,max=72"`
}

// LoginRequestDTO represents HTTP request for login
type LoginRequestDTO struct {
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponseDTO represents HTTP response for login
type LoginResponseDTO struct {
	Token             string `json:"token"`
	ExpiresAt         string `json:"expiresAt"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

// CalendarQueryDTO represents HTTP query parameters of the month view
type CalendarQueryDTO struct {
	Month   string `form:"month" validate:"omitempty,yyyymm"`
	Padding *bool  `form:"padding"`
}

// CursorMonthRequestDTO moves the displayed month by offset
type CursorMonthRequestDTO struct {
	Offset *int `json:"offset" validate:"required,min=-1200,max=1200"`
}

// StatsQueryDTO represents HTTP query parameters of the statistics endpoint
type StatsQueryDTO struct {
	Strategy string `form:"strategy" validate:"omitempty,max=20"`
	Period   string `form:"period" validate:"omitempty,max=10"`
}

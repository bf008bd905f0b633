package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"lifelog/src/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	hhmmPattern  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-() ]{0,20}$`)
)

// CustomValidator は拡張バリデーション機能を提供
type CustomValidator struct {
	validator *validator.Validate
}

// ValidationError はバリデーションエラーの詳細情報
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationErrors は複数のバリデーションエラー
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d errors", len(ve.Errors))
}

// NewCustomValidator creates a new custom validator instance
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// エラーのフィールド名はJSONのキー（クエリはformのキー）を使う
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	cv := &CustomValidator{validator: v}
	cv.register()
	return cv
}

func (cv *CustomValidator) register() {
	rules := map[string]validator.Func{
		"ymd":                validateYMD,
		"yyyymm":             validateYYYYMM,
		"hhmm":               validateHHMM,
		"phone":              validatePhone,
		"safe_text":          validateSafeText,
		"weather":            enumRule(func(s string) bool { return domain.Weather(s).IsValid() }),
		"feeling":            enumRule(func(s string) bool { return domain.Feeling(s).IsValid() }),
		"color_type":         enumRule(func(s string) bool { return domain.ColorType(s).IsValid() }),
		"todo_status":        enumRule(func(s string) bool { return domain.Status(s).IsValid() }),
		"anniversary_type":   enumRule(func(s string) bool { return domain.AnniversaryType(s).IsValid() }),
		"anniversary_weight": enumRule(func(s string) bool { return domain.AnniversaryWeight(s).IsValid() }),
		"font_type":          enumRule(func(s string) bool { return domain.FontType(s).IsValid() }),
	}
	for tag, fn := range rules {
		// 登録に失敗するのはタグ名が不正な場合のみ
		if err := cv.validator.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate validates a struct and returns detailed error information
func (cv *CustomValidator) Validate(s interface{}) error {
	err := cv.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	result := ValidationErrors{Errors: make([]ValidationError, 0, len(fieldErrors))}
	for _, fe := range fieldErrors {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: generateErrorMessage(fe),
		})
	}
	return result
}

// ValidateID checks that an id path parameter is a UUID
func (cv *CustomValidator) ValidateID(idStr string) (string, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return "", fmt.Errorf("ID is required")
	}
	if len(idStr) > 36 {
		return "", fmt.Errorf("ID is too long")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", fmt.Errorf("invalid ID format")
	}
	return id.String(), nil
}

// NormalizeName trims the surrounding whitespace of single-line names
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}

// enumRule wraps an IsValid check; empty values are left to required/omitempty
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || valid(value)
	}
}

func validateYMD(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := domain.ParseDate(value)
	return err == nil
}

func validateYYYYMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := domain.ParseMonth(value)
	return err == nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || hhmmPattern.MatchString(value)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateSafeText(fl validator.FieldLevel) bool {
	// タブ、改行、復帰以外の制御文字を拒否
	for _, r := range fl.Field().String() {
		if (r < 32 && r != 9 && r != 10 && r != 13) || r == 127 {
			return false
		}
	}
	return true
}

// generateErrorMessage generates user-friendly error messages
func generateErrorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s は必須項目です", field)
	case "max":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s は %s 件以下にしてください", field, err.Param())
		}
		return fmt.Sprintf("%s は %s 文字以下で入力してください", field, err.Param())
	case "min":
		return fmt.Sprintf("%s は %s 文字以上で入力してください", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s は有効な値を選択してください (許可された値: %s)", field, err.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s は有効なIDではありません", field)
	case "ymd":
		return fmt.Sprintf("%s は YYYY-MM-DD 形式で入力してください", field)
	case "yyyymm":
		return fmt.Sprintf("%s は YYYY-MM 形式で入力してください", field)
	case "hhmm":
		return fmt.Sprintf("%s は HH:MM 形式で入力してください", field)
	case "phone":
		return fmt.Sprintf("%s は有効な電話番号ではありません", field)
	case "safe_text":
		return fmt.Sprintf("%s に不正な文字が含まれています", field)
	case "weather", "feeling", "color_type", "todo_status", "anniversary_type", "anniversary_weight", "font_type":
		return fmt.Sprintf("%s は有効な値を選択してください", field)
	default:
		return fmt.Sprintf("%s が無効です (値: %v)", field, err.Value())
	}
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// AppName is stamped on every entry so archived files can be mixed with other services
const AppName = "lifelog"

var (
	// Log はInitLogger前でも使えるよう標準出力のロガーで初期化しておく
	Log          = logrus.New()
	currentFile  *os.File
	logDirectory = "logs"
)

// appHook adds the application name and the service time zone to each entry
type appHook struct {
	zone string
}

func (h appHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h appHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["app"]; !ok {
		entry.Data["app"] = AppName
	}
	if h.zone != "" {
		entry.Data["tz"] = h.zone
	}
	return nil
}

// InitLogger sets up JSON logging to stdout and a new file under directory.
// An unknown level falls back to info.
func InitLogger(level, directory string) error {
	return InitLoggerWithZone(level, directory, "")
}

// InitLoggerWithZone is InitLogger that also records the service time zone on every entry
func InitLoggerWithZone(level, directory, zone string) error {
	Log = logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	Log.AddHook(appHook{zone: zone})

	if directory != "" {
		logDirectory = directory
	}
	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		return fmt.Errorf("ログディレクトリの作成に失敗: %w", err)
	}
	if err := openLogFile(time.Now()); err != nil {
		return fmt.Errorf("ログファイルの作成に失敗: %w", err)
	}

	// 標準出力とファイルの両方に出力
	Log.SetOutput(io.MultiWriter(os.Stdout, currentFile))

	Log.WithFields(logrus.Fields{
		"level": parsed.String(),
		"file":  currentFile.Name(),
	}).Info("ロガーが初期化されました")
	return nil
}

// openLogFile starts a new file per process start; older files are left for the uploader
func openLogFile(now time.Time) error {
	if currentFile != nil {
		currentFile.Close()
	}

	name := fmt.Sprintf("%s_%s.log", AppName, now.Format("2006-01-02_15-04-05"))
	file, err := os.OpenFile(filepath.Join(logDirectory, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	currentFile = file
	return nil
}

// GetCurrentLogFile returns the path written to, or "" before InitLogger
func GetCurrentLogFile() string {
	if currentFile != nil {
		return currentFile.Name()
	}
	return ""
}

// CloseLogger flushes and closes the log file; stdout logging continues
func CloseLogger() {
	if currentFile == nil {
		return
	}
	Log.Info("ログファイルを閉じます")
	Log.SetOutput(os.Stdout)
	currentFile.Close()
	currentFile = nil
}

// WithFields フィールド付きログエントリを作成
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

// WithField フィールド付きログエントリを作成（単一フィールド）
func WithField(key string, value interface{}) *logrus.Entry {
	return Log.WithField(key, value)
}

// WithError エラー付きログエントリを作成
func WithError(err error) *logrus.Entry {
	return Log.WithError(err)
}

package usecase_test

import (
	"io"
	"time"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/infrastructure/memory"
	"lifelog/src/store"

	"github.com/sirupsen/logrus"
)

const today = "2025-07-15"

func fixedWindow() calendar.Window {
	d := domain.MustParseDate(today)
	return calendar.Window{
		Start: calendar.DefaultServiceStart,
		Today: func() domain.Date { return d },
	}
}

func memoryRepos() store.Repositories {
	return store.Repositories{
		Journals:      memory.NewJournalRepository(),
		Todos:         memory.NewTodoRepository(),
		Categories:    memory.NewCategoryRepository(),
		Anniversaries: memory.NewAnniversaryRepository(),
		Profiles:      memory.NewProfileRepository(),
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// loadedStore returns a store that already holds a committed snapshot
func loadedStore() *store.Store {
	s := store.New()
	s.Commit(s.Begin(), store.Snapshot{})
	return s
}

func wallClock(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

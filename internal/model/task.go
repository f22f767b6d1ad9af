package model

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLen is the longest title, in characters, ValidateTitle accepts.
const MaxTitleLen = 200

var (
	// ErrEmptyTitle is returned by ValidateTitle for blank input.
	ErrEmptyTitle = errors.New("empty title")
	// ErrTitleTooLong is returned by ValidateTitle past MaxTitleLen.
	ErrTitleTooLong = errors.New("title too long")
)

// Task is the domain model for a single to-do entry.
// Title is set once at creation; only Done changes afterwards.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns an opaque id: the current unix milliseconds in base 36,
// a dash and six random base-36 characters.
func NewID() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
	b.WriteByte('-')
	for range 6 {
		b.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return b.String()
}

// NewTask builds a fresh, not-done task with a generated id.
// Callers are expected to run the title through ValidateTitle first.
func NewTask(title string) Task {
	return Task{ID: NewID(), Title: strings.TrimSpace(title)}
}

// ValidateTitle trims raw and rejects it when nothing is left or when the
// trimmed title is longer than MaxTitleLen characters.
func ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// Clone returns an independent copy of tasks. A nil input yields an empty,
// non-nil slice so it always serializes as [].
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

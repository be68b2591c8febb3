// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация и форматирование времени для дашборда.
package common

import (
	"fmt"
	"math"
	"time"
)

// pluralizeRu возвращает правильную форму слова для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → one (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → few (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → many (0, 5-20, 25-30, 100, ...)
func pluralizeRu(n int, one, few, many string) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeMinutes возвращает правильную форму слова «минута».
func PluralizeMinutes(n int) string {
	return pluralizeRu(n, "минута", "минуты", "минут")
}

// PluralizeHours возвращает правильную форму слова «час».
func PluralizeHours(n int) string {
	return pluralizeRu(n, "час", "часа", "часов")
}

// FormatRelativeTime форматирует время события относительно now.
// Так же показывает даты дашборд: «только что», «5 мин назад», «3 ч назад»,
// «вчера», дальше — дата.
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case mins < 1:
		return "только что"
	case mins < 60:
		return fmt.Sprintf("%d мин назад", mins)
	case hours < 24:
		return fmt.Sprintf("%d ч назад", hours)
	case days == 1:
		return "вчера"
	default:
		return t.Format("02.01.2006")
	}
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" по Москве.
func FormatDateTime(t time.Time) string {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		loc = time.FixedZone("MSK", 3*60*60)
	}
	return t.In(loc).Format("02.01.2006 15:04")
}

// FormatClock форматирует продолжительность в "ЧЧ:ММ".
// Используется для длительности активных чатов.
func FormatClock(d time.Duration) string {
	mins := int(d.Minutes())
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// Package common — clock.go прячет все обращения к системным часам
// за одним интерфейсом. TTL вложений и истечение сессий зависят от
// текущего времени, поэтому в тестах часы подменяются.
package common

import "time"

// Clock возвращает текущее время. Единственная точка чтения часов в проекте.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock возвращает часы, читающие time.Now().
func SystemClock() Clock { return systemClock{} }

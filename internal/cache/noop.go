package cache

import "time"

// Noop кеш, который ничего не хранит. Используется, когда Redis не настроен.
type Noop struct{}

func (Noop) Get(string, any) (bool, error)        { return false, nil }
func (Noop) Set(string, any, time.Duration) error { return nil }
func (Noop) Invalidate(string) error              { return nil }

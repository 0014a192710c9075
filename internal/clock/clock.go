package clock

import "time"

// Clock - источник текущего времени, подменяется в тестах
type Clock interface {
	Now() time.Time
}

// RealClock возвращает системное время в UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock всегда возвращает одно и то же время
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

package driver

import "time"

// ScanStatus reports whether a file check started or finished.
type ScanStatus int

const (
	// ScanStart indicates that the check of a file has begun.
	ScanStart ScanStatus = iota
	ScanDone
)

// ScanEvent describes the boundary of one file check inside CheckDir.
type ScanEvent struct {
	Path     string
	Total    int // сколько файлов в прогоне всего
	Status   ScanStatus
	Findings int           // ошибки + предупреждения файла, только для ScanDone
	Elapsed  time.Duration // длительность проверки файла, только для ScanDone
}

// ScanObserver receives scan events emitted during CheckDir. Workers run in
// parallel, so the observer may be invoked from several goroutines at once.
type ScanObserver func(ScanEvent)

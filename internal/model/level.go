package model

// Level is the severity of a report, used to route lines to a log channel.
// Values are ordered from least to most severe.
type Level int

// Available Level values.
const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelInfo:
		fallthrough
	default:
		return "info"
	}
}

// LevelFlags are the aggregate facts a level is resolved from.
type LevelFlags struct {
	Success  bool // at least one outcome completed
	Failures bool
	Errors   bool
	Skipped  bool
}

// ResolveLevel picks the worst level the flags allow: any failure or error
// is LevelError, otherwise any skip is LevelWarning, otherwise LevelSuccess
// when something completed and LevelInfo when nothing did.
func ResolveLevel(f LevelFlags) Level {
	switch {
	case f.Failures || f.Errors:
		return LevelError
	case f.Skipped:
		return LevelWarning
	case f.Success:
		return LevelSuccess
	default:
		return LevelInfo
	}
}

// Max returns the more severe of two levels.
func (l Level) Max(other Level) Level {
	if other > l {
		return other
	}

	return l
}

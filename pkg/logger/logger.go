package logx

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/core"
)

// Opts controls logger initialization.
type Opts struct {
	Environment core.Environment
	// Service is stamped on every event when non-empty.
	Service string
}

var defaultOpts = Opts{Environment: core.Development}

func safe(opts ...Opts) Opts {
	if len(opts) == 0 {
		return defaultOpts
	}
	return opts[0]
}

// Init configures the global zerolog logger. Development gets a console
// writer with caller info at debug level; production logs structured JSON at
// info level.
func Init(opts ...Opts) {
	o := safe(opts...)
	if o.Environment.IsProduction() {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	} else {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger()
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}
	if o.Service != "" {
		log.Logger = log.Logger.With().Str("service", o.Service).Logger()
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Panic() *zerolog.Event {
	return log.Panic()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

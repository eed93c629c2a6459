package main

import (
	"go.uber.org/zap"

	"chessdex/assemble"
)

// zapObserver logs engine progress events. Routine candidate traffic
// goes to debug; decisions and failures to info.
type zapObserver struct {
	log *zap.Logger
}

func (z zapObserver) Observe(ev assemble.Event) {
	fields := []zap.Field{
		zap.Int("index", ev.Index),
		zap.Int("page", ev.Page),
	}
	if ev.Score != 0 {
		fields = append(fields, zap.Float64("score", ev.Score))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}

	switch ev.Kind {
	case assemble.EventHeaderFound, assemble.EventImageChosen, assemble.EventSolutionFound:
		z.log.Info(ev.Kind.String(), fields...)
	case assemble.EventImageRejected, assemble.EventSearchFailed:
		z.log.Warn(ev.Kind.String(), fields...)
	default:
		z.log.Debug(ev.Kind.String(), fields...)
	}
}

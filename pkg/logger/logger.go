package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

// Init инициализирует глобальный логгер.
// isDev=true — читаемый консольный вывод, иначе production JSON.
func Init(isDev bool) error {
	var err error
	if isDev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	return err
}

// L возвращает глобальный логгер. До Init — no-op.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/v2rayA/beego/v2/logs"
)

// InitLog initializes the global logger. logWay is either "console" or "file".
func InitLog(logWay string, logFile string, logLevel string, maxDays int64, disableColor bool, disableTimestamp bool) {
	if logWay == "file" {
		params := fmt.Sprintf(`{"filename": %q, "maxdays": %d, "disabletimestamp": %v}`, logFile, maxDays, disableTimestamp)
		_ = logs.SetLogger(logs.AdapterFile, params)
	} else {
		params := fmt.Sprintf(`{"color": %v, "disabletimestamp": %v}`, !disableColor, disableTimestamp)
		_ = logs.SetLogger(logs.AdapterConsole, params)
	}
	logs.SetLogFuncCall(false)
	SetLogLevel(logLevel)
}

func SetLogLevel(logLevel string) {
	switch strings.ToLower(logLevel) {
	case "trace":
		logs.SetLevel(logs.LevelTrace)
	case "debug":
		logs.SetLevel(logs.LevelDebug)
	case "info":
		logs.SetLevel(logs.LevelInformational)
	case "warn":
		logs.SetLevel(logs.LevelWarning)
	case "error":
		logs.SetLevel(logs.LevelError)
	default:
		logs.SetLevel(logs.LevelInformational)
	}
}

func Trace(format string, v ...interface{}) {
	logs.Trace(format, v...)
}

func Debug(format string, v ...interface{}) {
	logs.Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	logs.Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	logs.Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	logs.Error(format, v...)
}

func Fatal(format string, v ...interface{}) {
	logs.Critical(format, v...)
	logs.GetBeeLogger().Flush()
	os.Exit(1)
}

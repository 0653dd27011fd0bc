package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = logrus.New()

// CustomFormatter provides a clean, standard log format
type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02 15:04:05")

	// Color codes for different levels
	var levelColor string
	var levelText string
	switch entry.Level {
	case logrus.InfoLevel:
		levelColor = "\033[36m" // Cyan
		levelText = " INFO"
	case logrus.WarnLevel:
		levelColor = "\033[33m" // Yellow
		levelText = " WARN"
	case logrus.ErrorLevel:
		levelColor = "\033[31m" // Red
		levelText = "ERROR"
	case logrus.DebugLevel:
		levelColor = "\033[37m" // White
		levelText = "DEBUG"
	default:
		levelColor = "\033[0m" // Reset
		levelText = strings.ToUpper(entry.Level.String())
	}

	reset := "\033[0m"

	// Get module name from fields or use default
	module := "main"
	if moduleField, exists := entry.Data["module"]; exists {
		if moduleStr, ok := moduleField.(string); ok {
			module = moduleStr
		}
	}

	// Format: [LEVEL timestamp] [module] message
	return []byte(fmt.Sprintf("[%s%s%s %s] [%12s] %s\n",
		levelColor, levelText, reset, timestamp, module, entry.Message)), nil
}

func initLogger(logFile string) {
	var output io.Writer = os.Stdout

	if logFile != "" {
		output = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}

	logger.SetOutput(output)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&CustomFormatter{})
}

// Convenience functions with module support
func logInfo(msg string, args ...interface{}) {
	logModule(logrus.InfoLevel, "main", msg, args...)
}

func logWarn(msg string, args ...interface{}) {
	logModule(logrus.WarnLevel, "main", msg, args...)
}

func logError(msg string, args ...interface{}) {
	logModule(logrus.ErrorLevel, "main", msg, args...)
}

func logDebug(msg string, args ...interface{}) {
	logModule(logrus.DebugLevel, "main", msg, args...)
}

func logFatal(msg string, args ...interface{}) {
	entry := logger.WithField("module", "main")
	if len(args) > 0 {
		entry.Fatalf(msg, args...)
	} else {
		entry.Fatal(msg)
	}
}

// Module-specific logging functions
func logInfoModule(module, msg string, args ...interface{}) {
	logModule(logrus.InfoLevel, module, msg, args...)
}

func logWarnModule(module, msg string, args ...interface{}) {
	logModule(logrus.WarnLevel, module, msg, args...)
}

func logErrorModule(module, msg string, args ...interface{}) {
	logModule(logrus.ErrorLevel, module, msg, args...)
}

func logModule(level logrus.Level, module, msg string, args ...interface{}) {
	entry := logger.WithField("module", module)
	if len(args) > 0 {
		entry.Logf(level, msg, args...)
	} else {
		entry.Log(level, msg)
	}
}

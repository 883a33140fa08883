package logger

import (
	"io"
	"log"
	"os"
)

// Log is the session log. It discards output until Init is called.
var Log = log.New(io.Discard, "", log.LstdFlags)

var logFile *os.File

func Init(logFilePath string) error {
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}

	logFile = file
	Log = log.New(file, "", log.LstdFlags)
	Log.Println("Logger initialized.")
	return nil
}

func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	Log = log.New(io.Discard, "", log.LstdFlags)
}

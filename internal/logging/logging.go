package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger writing timestamped lines to stdout and to a per-run
// log file named <prefix>_YYYYMMDD_HHMMSS.log under dir. The file is capped
// by lumberjack so a runaway pass cannot fill the disk. Returns the logger
// and the log file path.
func New(prefix, dir string) (*logrus.Logger, string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.log", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 3,
	}

	log := logrus.New()
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return log, path, nil
}

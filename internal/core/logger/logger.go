package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotate adds a lumberjack-rotated file sink next to stdout.
type FileRotate struct {
	Enable     bool
	Filename   string // e.g. logs/api.log
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Options struct {
	Level string // debug / info / warn / error
	JSON  bool   // console encoder with colors otherwise
	App   string // attached as the "app" field when set
	File  FileRotate
}

// New builds the process logger. The returned func flushes buffered entries.
func New(opt Options) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(opt.JSON, true), zapcore.AddSync(os.Stdout), lvl),
	}
	if opt.File.Enable {
		rot := &lumberjack.Logger{
			Filename:   opt.File.Filename,
			MaxSize:    max(1, opt.File.MaxSizeMB),
			MaxBackups: max(0, opt.File.MaxBackups),
			MaxAge:     max(0, opt.File.MaxAgeDays),
			Compress:   opt.File.Compress,
		}
		// files never get color codes
		cores = append(cores, zapcore.NewCore(encoder(opt.JSON, false), zapcore.AddSync(rot), lvl))
	}

	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if !opt.JSON {
		opts = append(opts, zap.Development())
	}
	l := zap.New(core, opts...)
	if opt.App != "" {
		l = l.With(zap.String("app", opt.App))
	}
	return l, func() { _ = l.Sync() }
}

func encoder(json, color bool) zapcore.Encoder {
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

type levelWriter struct {
	l     *zap.Logger
	level zapcore.Level
}

func (w *levelWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\r\n")
	if ce := w.l.Check(w.level, msg); ce != nil {
		ce.Write()
	}
	return len(p), nil
}

// ToWriter adapts l to an io.Writer, one entry per write. Used for gin's
// default writers.
func ToWriter(l *zap.Logger, level zapcore.Level) io.Writer {
	return &levelWriter{l: l, level: level}
}

func ToStdLogger(l *zap.Logger, level zapcore.Level) (*log.Logger, error) {
	return zap.NewStdLogAt(l, level)
}

// RedirectStdLog routes the standard library's global logger into l.
func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, err := zap.RedirectStdLogAt(l, level)
	if err != nil {
		return func() {}
	}
	return undo
}

// Package logger is the logging core of the toolkit: a leveled logger that
// fans each message out to any number of pluggable sinks.
//
// # Levels
//
// Levels are ordered debug < verbose < info < warn < error. A message is
// delivered when its level is at or above the logger's minimum level at the
// time of the call. [ParseLevel] accepts level names case-insensitively.
//
// # Sinks
//
// A [Sink] accepts rendered lines of the form
//
//	2024-01-02 03:04:05 [INFO]: The quick brown fox
//
// [FileSink] appends them to a file it creates on the first write, and
// [OutputChannelSink] appends them to a host-owned [OutputChannel]. Each
// attached sink has its own queue and goroutine: a log call only queues the
// line, lines reach one sink in call order, and sinks do not wait on each
// other.
//
//	log := logger.New(logger.LevelInfo)
//	fileHandle, err := log.AttachFile(path)
//	if err != nil {
//		return err
//	}
//	log.AttachChannel(out)
//	log.Info("deployed", stackName, "in", elapsed)
//	log.Detach(fileHandle)
//
// A sink that fails is retried once and then reported to the diagnostics
// logger given by [WithDiagnostics]; the failure never reaches the caller
// of the log method.
//
// # Disposal
//
// [Logger.Dispose] drains and closes every sink and makes the logger inert.
// Every later log call returns a [*DisposedLoggerError], which matches
// [ErrDisposed]. Calling Dispose again does nothing.
package logger

package handler

// noopLogger is a silent domain.Logger used by handler tests.
type noopLogger struct{}

func (l *noopLogger) Info(msg string, fields ...interface{})             {}
func (l *noopLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *noopLogger) Debug(msg string, fields ...interface{})            {}
func (l *noopLogger) Warn(msg string, fields ...interface{})             {}

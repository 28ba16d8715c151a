package core

// Fields carries structured extras alongside a log message.
type Fields map[string]interface{}

// Logger is any service that can log app events.
// expected args: error, Fields, *http.Request
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

package i

// Logger is the levelled logger each component writes to.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

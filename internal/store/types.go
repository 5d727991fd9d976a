package store

type LogType string

const (
	LogTypeCSV LogType = "csv"
)

type LogConfig struct {
	Path string
	Type LogType
	// CRLF switches row terminators to \r\n.
	CRLF bool
}

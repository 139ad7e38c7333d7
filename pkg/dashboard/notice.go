package dashboard

type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a user-visible message produced during a render pass.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

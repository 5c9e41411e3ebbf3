package constants

type contextKey string

const (
	AppKey       contextKey = "app"
	LoggerKey    contextKey = "logger"
	ParamsKey    contextKey = "params"
	SessionKey   contextKey = "session"
	PageContext  contextKey = "pageContext"
	RequestStart contextKey = "requestStart"
)

package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilDepsFatalLogMsg is used if app or one of the dependencies is nil.
	ErrNilDepsFatalLogMsg = "app or handler dependencies are nil"

	// HeaderClientInfo and HeaderAPIKey are sent by the browser client and allowed by CORS.
	HeaderClientInfo = "x-client-info"
	HeaderAPIKey     = "apikey"
)

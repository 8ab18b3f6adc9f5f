package server

import "strconv"

// ANSI colours for the DEV console log. JSON logs stay uncoloured.
const (
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
	gray    = "\033[90m"

	resetColor = "\033[0m"
)

var methodColors = map[string]string{
	"GET":    green,
	"POST":   blue,
	"PUT":    cyan,
	"DELETE": yellow,
	"PATCH":  magenta,
}

func (s *Server) colourise() bool {
	return s.env == "DEV"
}

func (s *Server) colouredMethod(method string) string {
	if !s.colourise() || method == "" {
		return method
	}
	color, ok := methodColors[method]
	if !ok {
		color = gray
	}
	return color + method + resetColor
}

func (s *Server) colouredStatus(status int) string {
	text := strconv.Itoa(status)
	if !s.colourise() {
		return text
	}
	switch {
	case status >= 500:
		return red + text + resetColor
	case status >= 400:
		return yellow + text + resetColor
	case status >= 300:
		return cyan + text + resetColor
	default:
		return green + text + resetColor
	}
}

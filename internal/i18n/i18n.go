// Package i18n holds the user-facing strings of the admin client. English
// strings are the message keys; Indonesian is registered alongside.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MsgLoginFailed        = "Login failed, please try again"
	MsgRegistrationFailed = "Registration failed, please try again"
	MsgGreeting           = "Hello, %s"
	MsgLogout             = "Logout"
	MsgTotalUsers         = "Total users"
	MsgLoadFailed         = "Failed to load %s"
)

var supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(supported)

func init() {
	id := language.Indonesian
	for key, msg := range map[string]string{
		MsgLoginFailed:        "Login gagal, silakan coba lagi",
		MsgRegistrationFailed: "Registrasi gagal, silakan coba lagi",
		MsgGreeting:           "Halo, %s",
		MsgLogout:             "Keluar",
		MsgTotalUsers:         "Total pengguna",
		MsgLoadFailed:         "Gagal memuat %s",
	} {
		_ = message.SetString(id, key, msg)
	}
}

// Printer returns a message printer for the best supported match of locale.
// Unknown or empty locales get English.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Match(locale))
}

// Match resolves a locale string ("id", "id-ID", "en-US") to a supported tag
func Match(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.English
	}
	return supported[idx]
}

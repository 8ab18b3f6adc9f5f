package config

import "strings"

type APIConfig interface {
	GetAPIBaseURL() string
	GetUsersPageSize() int
}

type API struct {
	BaseURL       string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`
	UsersPageSize int    `env:"USERS_PAGE_SIZE" envDefault:"10"`
}

var _ APIConfig = API{}

// GetAPIBaseURL returns the collaborator API root without a trailing slash,
// e.g. "https://ular-tangga.example.com/api"
func (a API) GetAPIBaseURL() string {
	return strings.TrimRight(a.BaseURL, "/")
}

func (a API) GetUsersPageSize() int {
	if a.UsersPageSize <= 0 {
		return 10
	}
	return a.UsersPageSize
}

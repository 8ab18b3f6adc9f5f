package users

import (
	"encoding/json"
	"strings"
)

// Profile is the user record returned by the collaborator API. Only the
// fields the admin client displays are decoded; the original JSON is kept so
// the profile can be mirrored to durable storage without losing fields.
type Profile struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name,omitempty"`

	raw json.RawMessage
}

type profileFields Profile

func (p *Profile) UnmarshalJSON(data []byte) error {
	// id arrives as a number from some deployments
	var fields struct {
		profileFields
		ID json.RawMessage `json:"id,omitempty"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = Profile(fields.profileFields)
	p.ID = rawID(fields.ID)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (p Profile) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	fields := profileFields(p)
	return json.Marshal(fields)
}

// DisplayName returns the name shown in the admin header
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if fullName := strings.TrimSpace(p.FirstName + " " + p.LastName); fullName != "" {
		return fullName
	}
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}

// Pagination is the paging metadata attached to list responses
type Pagination struct {
	Total      int `json:"total" yaml:"total"`
	Page       int `json:"page,omitempty" yaml:"page,omitempty"`
	Limit      int `json:"limit,omitempty" yaml:"limit,omitempty"`
	TotalPages int `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
}

type ListResponse struct {
	Users      []*Profile  `json:"users" yaml:"users"`
	Pagination *Pagination `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// Total returns the pagination total, or 0 when the response carried none
func (r *ListResponse) Total() int {
	if r == nil || r.Pagination == nil {
		return 0
	}
	return r.Pagination.Total
}

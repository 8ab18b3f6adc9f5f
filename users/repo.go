package users

import "context"

// Lister pages through the users known to the collaborator API
type Lister interface {
	ListUsers(ctx context.Context, token string, page, limit int) (*ListResponse, error)
}

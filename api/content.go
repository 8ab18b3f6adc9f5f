package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/ular-tangga-admin/users"
)

// Question is one entry of the question bank shown on the snakes and
// ladders squares
type Question struct {
	ID         any      `json:"id" yaml:"id"`
	Text       string   `json:"question" yaml:"question"`
	Options    []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answer     string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Category   string   `json:"category,omitempty" yaml:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

type QuestionListResponse struct {
	Questions  []*Question       `json:"questions" yaml:"questions"`
	Pagination *users.Pagination `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// Analytics is the game summary served to the analytics tab
type Analytics struct {
	TotalGames        int     `json:"total_games" yaml:"total_games"`
	ActivePlayers     int     `json:"active_players" yaml:"active_players"`
	QuestionsAnswered int     `json:"questions_answered" yaml:"questions_answered"`
	CorrectRate       float64 `json:"correct_rate" yaml:"correct_rate"`
	AverageScore      float64 `json:"average_score" yaml:"average_score"`
}

func (c *Client) ListQuestions(ctx context.Context, token string, page, limit int) (*QuestionListResponse, error) {
	var resp QuestionListResponse
	if err := c.do(ctx, http.MethodGet, PathQuestions+pageQuery(page, limit), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Analytics(ctx context.Context, token string) (*Analytics, error) {
	var resp Analytics
	if err := c.do(ctx, http.MethodGet, PathAnalytics, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

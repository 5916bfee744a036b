package service

import (
	"context"
	"fmt"
	"strings"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const maxPromptTags = 20

// PromptInput carries the editable fields of a prompt vault entry.
type PromptInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	Favorite bool
}

// PromptService manages a user's prompt vault.
type PromptService interface {
	Create(ctx context.Context, userID int64, in PromptInput) (*domain.Prompt, error)
	Update(ctx context.Context, userID, id int64, in PromptInput) (*domain.Prompt, error)
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Prompt, error)
	List(ctx context.Context, userID int64, filter domain.PromptFilter) ([]domain.Prompt, error)
}

type promptService struct {
	prompts repository.PromptRepository
}

func NewPromptService(prompts repository.PromptRepository) PromptService {
	return &promptService{prompts: prompts}
}

func normalizePrompt(in PromptInput) (PromptInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(in.Title) > maxTitleLength {
		return in, fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}
	if in.Content == "" {
		return in, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if in.Category == "" {
		in.Category = "general"
	}
	in.Tags = normalizeTags(in.Tags)
	if len(in.Tags) > maxPromptTags {
		return in, fmt.Errorf("%w: at most %d tags are allowed", ErrInvalidInput, maxPromptTags)
	}
	return in, nil
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *promptService) Create(ctx context.Context, userID int64, in PromptInput) (*domain.Prompt, error) {
	in, err := normalizePrompt(in)
	if err != nil {
		return nil, err
	}
	prompt := &domain.Prompt{
		UserID:   userID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Tags:     in.Tags,
		Favorite: in.Favorite,
	}
	if _, err := s.prompts.Create(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *promptService) Update(ctx context.Context, userID, id int64, in PromptInput) (*domain.Prompt, error) {
	in, err := normalizePrompt(in)
	if err != nil {
		return nil, err
	}
	prompt, err := s.prompts.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	prompt.Title = in.Title
	prompt.Content = in.Content
	prompt.Category = in.Category
	prompt.Tags = in.Tags
	prompt.Favorite = in.Favorite
	if err := s.prompts.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *promptService) Delete(ctx context.Context, userID, id int64) error {
	return s.prompts.Delete(ctx, userID, id)
}

func (s *promptService) Get(ctx context.Context, userID, id int64) (*domain.Prompt, error) {
	return s.prompts.Get(ctx, userID, id)
}

func (s *promptService) List(ctx context.Context, userID int64, filter domain.PromptFilter) ([]domain.Prompt, error) {
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
	filter.Search = strings.TrimSpace(filter.Search)
	return s.prompts.List(ctx, userID, filter)
}

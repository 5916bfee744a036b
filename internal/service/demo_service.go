package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"devdeck/internal/domain"
)

// DemoService signs visitors in as a shared demo account populated with sample data.
type DemoService interface {
	Enabled() bool
	// Login returns the demo user, creating and seeding it on first use.
	Login(ctx context.Context) (*domain.User, error)
}

type DemoConfig struct {
	Enabled  bool
	Username string
	Password string
}

type demoService struct {
	cfg      DemoConfig
	users    UserService
	todos    TodoService
	prompts  PromptService
	profiles ProfileService

	seedMu sync.Mutex
}

func NewDemoService(cfg DemoConfig, users UserService, todos TodoService, prompts PromptService, profiles ProfileService) DemoService {
	return &demoService{
		cfg:      cfg,
		users:    users,
		todos:    todos,
		prompts:  prompts,
		profiles: profiles,
	}
}

func (s *demoService) Enabled() bool {
	return s.cfg.Enabled && s.cfg.Username != "" && s.cfg.Password != ""
}

func (s *demoService) Login(ctx context.Context) (*domain.User, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("%w: demo mode is disabled", ErrUnavailable)
	}
	user, _, err := s.users.Ensure(ctx, s.cfg.Username, s.cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("ensure demo user: %w", err)
	}
	if err := s.seedIfEmpty(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// seedIfEmpty populates the demo account while it has no projects, so a seed
// that failed part way is retried on the next login.
func (s *demoService) seedIfEmpty(ctx context.Context, userID int64) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	projects, err := s.todos.ListProjects(ctx, userID)
	if err != nil {
		return fmt.Errorf("list demo projects: %w", err)
	}
	if len(projects) > 0 {
		return nil
	}
	return s.seed(ctx, userID)
}

func (s *demoService) seed(ctx context.Context, userID int64) error {
	if _, err := s.profiles.Update(ctx, userID, "Demo Developer", domain.ThemeSystem); err != nil {
		return fmt.Errorf("seed demo profile: %w", err)
	}

	work, err := s.todos.CreateProject(ctx, userID, "Work", "#2563eb")
	if err != nil {
		return fmt.Errorf("seed demo project: %w", err)
	}
	personal, err := s.todos.CreateProject(ctx, userID, "Personal", "#16a34a")
	if err != nil {
		return fmt.Errorf("seed demo project: %w", err)
	}

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	todos := []TodoInput{
		{Title: "Review open pull requests", Priority: domain.PriorityHigh, ProjectID: &work.ID, DueDate: &due},
		{Title: "Write release notes", Description: "Summarise the changes since the last tag.", Priority: domain.PriorityMedium, ProjectID: &work.ID},
		{Title: "Set up local Postgres", Priority: domain.PriorityLow, ProjectID: &work.ID, Completed: true},
		{Title: "Read one chapter of a tech book", Priority: domain.PriorityLow, ProjectID: &personal.ID},
	}
	for _, in := range todos {
		if _, err := s.todos.CreateTodo(ctx, userID, in); err != nil {
			return fmt.Errorf("seed demo todo: %w", err)
		}
	}

	prompts := []PromptInput{
		{
			Title:    "Explain this code",
			Content:  "Explain what the following code does, step by step, and point out anything surprising.",
			Category: "coding",
			Tags:     []string{"explain", "learning"},
			Favorite: true,
		},
		{
			Title:    "Unit tests",
			Content:  "Write table-driven unit tests for this function, covering edge cases.",
			Category: "coding",
			Tags:     []string{"testing"},
		},
		{
			Title:    "Meeting summary",
			Content:  "Summarise these meeting notes into decisions, owners and open questions.",
			Category: "writing",
			Tags:     []string{"summary"},
		},
	}
	for _, in := range prompts {
		if _, err := s.prompts.Create(ctx, userID, in); err != nil {
			return fmt.Errorf("seed demo prompt: %w", err)
		}
	}
	return nil
}

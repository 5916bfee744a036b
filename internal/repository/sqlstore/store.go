package sqlstore

import (
	"context"

	"devdeck/internal/repository"
)

// Store groups every repository backed by one database.
type Store struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Projects repository.ProjectRepository
	Todos    repository.TodoRepository
	Prompts  repository.PromptRepository
	Assets   repository.AssetRepository
	Pomodoro repository.PomodoroRepository
	Contacts repository.ContactRepository
	Quotes   repository.QuoteRepository
}

func NewStore(db *DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Profiles: NewProfileRepository(db),
		Projects: NewProjectRepository(db),
		Todos:    NewTodoRepository(db),
		Prompts:  NewPromptRepository(db),
		Assets:   NewAssetRepository(db),
		Pomodoro: NewPomodoroRepository(db),
		Contacts: NewContactRepository(db),
		Quotes:   NewQuoteRepository(db),
	}
}

// Init creates all tables. Users come first since the other tables reference them.
func (s *Store) Init(ctx context.Context) error {
	for _, r := range []interface{ Init(context.Context) error }{
		s.Users,
		s.Profiles,
		s.Projects,
		s.Todos,
		s.Prompts,
		s.Assets,
		s.Pomodoro,
		s.Contacts,
		s.Quotes,
	} {
		if err := r.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

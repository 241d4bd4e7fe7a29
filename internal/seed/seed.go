// Package seed loads the sample users, projects and tasks used for local
// development and demos.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/service/auth"
	"github.com/akssingh0102/task-management/internal/store"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// ErrAlreadySeeded is returned by Apply when the first fixture user exists.
var ErrAlreadySeeded = errors.New("database already seeded")

// Fixtures is the seed file layout. Records refer to each other by email,
// project name and task title.
type Fixtures struct {
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Projects []struct {
		Name  string `yaml:"name"`
		Owner string `yaml:"owner"`
	} `yaml:"projects"`
	Tasks []struct {
		Title       string     `yaml:"title"`
		Description string     `yaml:"description"`
		Status      string     `yaml:"status"`
		Priority    string     `yaml:"priority"`
		Due         *time.Time `yaml:"due"`
		Project     string     `yaml:"project"`
		Assignee    string     `yaml:"assignee"`
	} `yaml:"tasks"`
	Comments []struct {
		Task    string `yaml:"task"`
		Author  string `yaml:"author"`
		Content string `yaml:"content"`
	} `yaml:"comments"`
	Notifications []struct {
		User    string `yaml:"user"`
		Task    string `yaml:"task"`
		Message string `yaml:"message"`
	} `yaml:"notifications"`
}

// Default returns the embedded fixtures.
func Default() (*Fixtures, error) {
	return Parse(bytes.NewReader(defaultFixtures))
}

// Parse decodes fixtures from r. Unknown keys are an error.
func Parse(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// Stores are the persistence targets of Apply.
type Stores struct {
	Users         store.UserStore
	Projects      store.ProjectStore
	Tasks         store.TaskStore
	Comments      store.CommentStore
	Notifications store.NotificationStore
}

// Result counts the records Apply created.
type Result struct {
	Users, Projects, Tasks, Comments, Notifications int
}

// Apply inserts f through s. It stops at the first failure; records
// inserted before it are kept.
func Apply(ctx context.Context, f *Fixtures, s Stores, hasher auth.PasswordHasher, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "seed"))

	var res Result
	if len(f.Users) > 0 {
		_, err := s.Users.GetByEmail(ctx, f.Users[0].Email)
		switch {
		case err == nil:
			return res, ErrAlreadySeeded
		case !store.IsNotFoundError(err):
			return res, fmt.Errorf("check existing users: %w", err)
		}
	}

	users := map[string]uuid.UUID{}
	for _, u := range f.Users {
		user, err := domain.NewUser(u.Name, u.Email, u.Password)
		if err != nil {
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		}
		if user.HashedPassword, err = hasher.Hash(user.Password); err != nil {
			return res, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		user.Password = ""
		if err := s.Users.Create(ctx, user); err != nil {
			return res, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		users[u.Email] = user.ID
		res.Users++
	}

	projects := map[string]uuid.UUID{}
	for _, p := range f.Projects {
		owner, err := lookup(users, "user", p.Owner)
		if err != nil {
			return res, err
		}
		project, err := domain.NewProject(p.Name, owner)
		if err != nil {
			return res, fmt.Errorf("project %s: %w", p.Name, err)
		}
		if err := s.Projects.Create(ctx, project); err != nil {
			return res, fmt.Errorf("create project %s: %w", p.Name, err)
		}
		projects[p.Name] = project.ID
		res.Projects++
	}

	tasks := map[string]uuid.UUID{}
	for _, t := range f.Tasks {
		projectID, err := lookup(projects, "project", t.Project)
		if err != nil {
			return res, err
		}
		var assignee *uuid.UUID
		if t.Assignee != "" {
			id, err := lookup(users, "user", t.Assignee)
			if err != nil {
				return res, err
			}
			assignee = &id
		}
		task, err := domain.NewTask(t.Title, t.Description, domain.TaskStatus(t.Status),
			domain.TaskPriority(t.Priority), t.Due, projectID, assignee)
		if err != nil {
			return res, fmt.Errorf("task %s: %w", t.Title, err)
		}
		if err := s.Tasks.Create(ctx, task); err != nil {
			return res, fmt.Errorf("create task %s: %w", t.Title, err)
		}
		tasks[t.Title] = task.ID
		res.Tasks++
	}

	for _, c := range f.Comments {
		taskID, err := lookup(tasks, "task", c.Task)
		if err != nil {
			return res, err
		}
		author, err := lookup(users, "user", c.Author)
		if err != nil {
			return res, err
		}
		comment, err := domain.NewComment(taskID, author, c.Content)
		if err != nil {
			return res, fmt.Errorf("comment on %s: %w", c.Task, err)
		}
		if err := s.Comments.Create(ctx, comment); err != nil {
			return res, fmt.Errorf("create comment on %s: %w", c.Task, err)
		}
		res.Comments++
	}

	for _, n := range f.Notifications {
		taskID, err := lookup(tasks, "task", n.Task)
		if err != nil {
			return res, err
		}
		userID, err := lookup(users, "user", n.User)
		if err != nil {
			return res, err
		}
		notification, err := domain.NewNotification(userID, taskID, n.Message)
		if err != nil {
			return res, fmt.Errorf("notification for %s: %w", n.User, err)
		}
		if err := s.Notifications.Create(ctx, notification); err != nil {
			return res, fmt.Errorf("create notification for %s: %w", n.User, err)
		}
		res.Notifications++
	}

	log.Info("seed data inserted",
		slog.Int("users", res.Users),
		slog.Int("projects", res.Projects),
		slog.Int("tasks", res.Tasks),
		slog.Int("comments", res.Comments),
		slog.Int("notifications", res.Notifications))
	return res, nil
}

func lookup(ids map[string]uuid.UUID, kind, key string) (uuid.UUID, error) {
	id, ok := ids[key]
	if !ok {
		return uuid.Nil, fmt.Errorf("fixture references unknown %s %q", kind, key)
	}
	return id, nil
}

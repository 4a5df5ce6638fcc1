// Command seed resets the public content tables and repopulates them from a
// YAML fixture file in one transaction. Contact messages are left alone and
// users are upserted by username.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"sarb.backend/internal/config"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	domainrepo "sarb.backend/internal/domain/repositories"
	"sarb.backend/internal/infrastructure/datasources"
	"sarb.backend/internal/infrastructure/repositories"
	"sarb.backend/pkg/logger"
	"sarb.backend/pkg/utils"
)

type Fixtures struct {
	Users       []UserFixture      `yaml:"users"`
	Team        []TeamFixture      `yaml:"team"`
	Services    []ServiceFixture   `yaml:"services"`
	CaseStudies []CaseStudyFixture `yaml:"case_studies"`
}

type UserFixture struct {
	Username     string `yaml:"username"`
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
	IsStaff      bool   `yaml:"is_staff"`
}

type TeamFixture struct {
	Name        string `yaml:"name"`
	Position    string `yaml:"position"`
	Bio         string `yaml:"bio"`
	Image       string `yaml:"image"`
	LinkedInURL string `yaml:"linkedin_url"`
	GithubURL   string `yaml:"github_url"`
	TwitterURL  string `yaml:"twitter_url"`
	Order       *int   `yaml:"order"`
}

type ServiceFixture struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Features    []string `yaml:"features"`
	Order       *int     `yaml:"order"`
}

type CaseStudyFixture struct {
	Title          string   `yaml:"title"`
	Slug           string   `yaml:"slug"`
	Description    string   `yaml:"description"`
	ClientName     string   `yaml:"client_name"`
	ClientIndustry string   `yaml:"client_industry"`
	Challenge      string   `yaml:"challenge"`
	Solution       string   `yaml:"solution"`
	Results        []string `yaml:"results"`
	Technologies   []string `yaml:"technologies"`
	Image          string   `yaml:"image"`
	Order          *int     `yaml:"order"`
}

// LoadFixtures decodes r, rejecting unknown keys.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixtures
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

type seeder struct {
	uow      domainrepo.UnitOfWork
	users    domainrepo.UserRepository
	team     domainrepo.TeamMemberRepository
	services domainrepo.ServiceRepository
	studies  domainrepo.CaseStudyRepository
}

// Summary counts what a seed run wrote.
type Summary struct {
	Users, TeamMembers, Services, CaseStudies int
}

func orderOr(order *int, index int) int {
	if order != nil {
		return *order
	}
	return index
}

func slugOr(slug, from string) string {
	if slug != "" {
		return slug
	}
	return utils.Slugify(from)
}

func (s *seeder) Run(ctx context.Context, f *Fixtures) (Summary, error) {
	var sum Summary
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.team.DeleteAll(ctx); err != nil {
			return fmt.Errorf("reset team: %w", err)
		}
		if err := s.services.DeleteAll(ctx); err != nil {
			return fmt.Errorf("reset services: %w", err)
		}
		if err := s.studies.DeleteAll(ctx); err != nil {
			return fmt.Errorf("reset case studies: %w", err)
		}

		for _, u := range f.Users {
			if err := s.upsertUser(ctx, u); err != nil {
				return err
			}
			sum.Users++
		}
		for i, m := range f.Team {
			member := &entities.TeamMember{
				Name: m.Name, Position: m.Position, Bio: m.Bio, Image: m.Image,
				LinkedInURL: m.LinkedInURL, GithubURL: m.GithubURL, TwitterURL: m.TwitterURL,
				Order: orderOr(m.Order, i),
			}
			if err := s.team.Create(ctx, member); err != nil {
				return fmt.Errorf("team member %q: %w", m.Name, err)
			}
			sum.TeamMembers++
		}
		for i, sv := range f.Services {
			icon, err := entities.ParseIcon(sv.Icon)
			if err != nil {
				return fmt.Errorf("service %q: %w", sv.Name, err)
			}
			service := &entities.Service{
				Name: sv.Name, Slug: slugOr(sv.Slug, sv.Name), Description: sv.Description,
				Icon: icon, Features: entities.ParseStringList(sv.Features), Order: orderOr(sv.Order, i),
			}
			if err := s.services.Create(ctx, service); err != nil {
				return fmt.Errorf("service %q: %w", sv.Name, err)
			}
			sum.Services++
		}
		for i, c := range f.CaseStudies {
			study := &entities.CaseStudy{
				Title: c.Title, Slug: slugOr(c.Slug, c.Title), Description: c.Description,
				ClientName: c.ClientName, ClientIndustry: c.ClientIndustry,
				Challenge: c.Challenge, Solution: c.Solution,
				Results: entities.ParseStringList(c.Results), Technologies: entities.ParseStringList(c.Technologies),
				Image: c.Image, Order: orderOr(c.Order, i+1),
			}
			if err := s.studies.Create(ctx, study); err != nil {
				return fmt.Errorf("case study %q: %w", c.Title, err)
			}
			sum.CaseStudies++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s *seeder) upsertUser(ctx context.Context, u UserFixture) error {
	if u.Username == "" || u.PasswordHash == "" {
		return fmt.Errorf("user fixture needs username and password_hash: %w", domainerrors.ErrInvalidInput)
	}
	existing, err := s.users.GetByUsername(ctx, u.Username)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return s.users.Create(ctx, &entities.User{
			Username: u.Username, Email: u.Email, PasswordHash: u.PasswordHash, IsStaff: u.IsStaff, IsActive: true,
		})
	case err != nil:
		return fmt.Errorf("user %q: %w", u.Username, err)
	}
	existing.Email = u.Email
	existing.PasswordHash = u.PasswordHash
	existing.IsStaff = u.IsStaff
	existing.IsActive = true
	return s.users.Update(ctx, existing)
}

var (
	loadEnv = godotenv.Load
	loadCfg = config.Load
	openDB  = datasources.Open
)

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "fixtures/content.yaml", "fixture file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	fh, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open fixtures: %w", err)
	}
	defer fh.Close()
	fixtures, err := LoadFixtures(fh)
	if err != nil {
		return err
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer datasources.Close(db)
	if err := datasources.Migrate(ctx, db); err != nil {
		return err
	}

	s := &seeder{
		uow:      repositories.NewUnitOfWork(db),
		users:    repositories.NewUserRepository(db),
		team:     repositories.NewTeamMemberRepository(db),
		services: repositories.NewServiceRepository(db),
		studies:  repositories.NewCaseStudyRepository(db),
	}
	sum, err := s.Run(ctx, fixtures)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Database populated",
		zap.String("file", *file),
		zap.Int("users", sum.Users),
		zap.Int("team_members", sum.TeamMembers),
		zap.Int("services", sum.Services),
		zap.Int("case_studies", sum.CaseStudies),
	)
	_, err = fmt.Fprintf(out, "Seeded %d team members, %d services, %d case studies, %d users\n",
		sum.TeamMembers, sum.Services, sum.CaseStudies, sum.Users)
	return err
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

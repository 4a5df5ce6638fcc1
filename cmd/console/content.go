package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"sarb.backend/internal/console/forms"
	"sarb.backend/internal/console/notify"
	"sarb.backend/internal/console/store"
	"sarb.backend/internal/console/views"
	"sarb.backend/internal/domain/entities"
)

// collection describes one resource for the shared list and delete commands.
type collection[T store.Identifiable] struct {
	use      string
	singular string
	plural   string
	slice    func() *store.Slice[T]
	render   func(io.Writer, store.State[T]) error
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// fetch loads the slice. A failure is rendered inline with the retry hint.
func fetch[T store.Identifiable](ctx context.Context, a *app, c collection[T]) (store.State[T], error) {
	err := c.slice().Fetch(ctx)
	st := c.slice().State()
	if err != nil {
		_ = c.render(a.out, st)
		return st, errReported
	}
	return st, nil
}

func find[T store.Identifiable](ctx context.Context, a *app, c collection[T], id int64) (T, error) {
	var zero T
	st, err := fetch(ctx, a, c)
	if err != nil {
		return zero, err
	}
	for _, item := range st.Items {
		if item.GetID() == id {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%s %d not found", c.singular, id)
}

func listCmd[T store.Identifiable](a *app, c collection[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + c.plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := fetch(cmd.Context(), a, c)
			if err != nil {
				return err
			}
			return c.render(a.out, st)
		},
	}
}

func deleteCmd[T store.Identifiable](a *app, c collection[T]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + c.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(fmt.Sprintf("Delete %s %d?", c.singular, id), yes)
			if err != nil || !ok {
				return err
			}
			if err := c.slice().Delete(cmd.Context(), id); err != nil {
				msg := c.slice().State().Error
				a.store.Notifications.Add("Delete failed", msg, notify.Error)
				return errors.New(msg)
			}
			a.store.Notifications.Add("Deleted", fmt.Sprintf("%s %d deleted", c.singular, id), notify.Success)
			fmt.Fprintf(a.out, "Deleted %s %d\n", c.singular, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

// save submits an open dialog and renders the saved entity.
func save[T store.Identifiable, D forms.Draft](ctx context.Context, a *app, c collection[T], d *forms.Dialog[D]) error {
	mode := d.Mode()
	out, err := forms.Submit[T](ctx, d, c.slice())
	if err != nil {
		a.store.Notifications.Add("Save failed", d.Error(), notify.Error)
		return errors.New(d.Error())
	}
	verb := "Added"
	if mode == forms.Edit {
		verb = "Updated"
	}
	a.store.Notifications.Add(verb, fmt.Sprintf("%s %d saved", c.singular, out.GetID()), notify.Success)
	return c.render(a.out, store.State[T]{Items: []T{out}})
}

// edit opens the dialog prefilled from the stored entity and applies the
// changed flags on top.
func edit[T store.Identifiable, D forms.Draft](ctx context.Context, a *app, c collection[T], arg string, prefill func(T) D, apply func(*D) error) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	item, err := find(ctx, a, c, id)
	if err != nil {
		return err
	}
	draft := prefill(item)
	if err := apply(&draft); err != nil {
		return err
	}
	d := forms.NewDialog[D]()
	if err := d.OpenEdit(id, draft); err != nil {
		return err
	}
	return save(ctx, a, c, d)
}

func add[T store.Identifiable, D forms.Draft](ctx context.Context, a *app, c collection[T], apply func(*D) error) error {
	var draft D
	if err := apply(&draft); err != nil {
		return err
	}
	d := forms.NewDialog[D]()
	if err := d.OpenAdd(draft); err != nil {
		return err
	}
	return save(ctx, a, c, d)
}

// changed copies a flag value into dst only when the flag was given.
func changed[V any](cmd *cobra.Command, name string, dst *V, v V) {
	if cmd.Flags().Changed(name) {
		*dst = v
	}
}

func loadImage(cmd *cobra.Command, path string, dst **forms.ImageSelection) error {
	if !cmd.Flags().Changed("image") {
		return nil
	}
	img, err := forms.LoadImage(path)
	if err != nil {
		return err
	}
	*dst = img
	return nil
}

type teamFlags struct {
	name, position, bio       string
	linkedin, github, twitter string
	image                     string
	order                     int
}

func (f *teamFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "full name")
	fl.StringVar(&f.position, "position", "", "job title")
	fl.StringVar(&f.bio, "bio", "", "short biography")
	fl.StringVar(&f.linkedin, "linkedin", "", "LinkedIn profile URL")
	fl.StringVar(&f.github, "github", "", "GitHub profile URL")
	fl.StringVar(&f.twitter, "twitter", "", "Twitter profile URL")
	fl.StringVar(&f.image, "image", "", "path to a profile image")
	fl.IntVar(&f.order, "order", 0, "display order")
}

func (f *teamFlags) apply(cmd *cobra.Command) func(*forms.TeamDraft) error {
	return func(d *forms.TeamDraft) error {
		changed(cmd, "name", &d.Name, f.name)
		changed(cmd, "position", &d.Position, f.position)
		changed(cmd, "bio", &d.Bio, f.bio)
		changed(cmd, "linkedin", &d.LinkedInURL, f.linkedin)
		changed(cmd, "github", &d.GithubURL, f.github)
		changed(cmd, "twitter", &d.TwitterURL, f.twitter)
		changed(cmd, "order", &d.Order, f.order)
		return loadImage(cmd, f.image, &d.Image)
	}
}

func newTeamCmd(a *app) *cobra.Command {
	c := collection[entities.TeamMember]{
		use: "team", singular: "team member", plural: "team members",
		slice:  func() *store.Slice[entities.TeamMember] { return a.store.Team },
		render: views.Team,
	}
	return contentCmd(a, c,
		func(cmd *cobra.Command) func(*forms.TeamDraft) error {
			f := &teamFlags{}
			f.bind(cmd)
			return f.apply(cmd)
		},
		forms.TeamDraftFrom,
	)
}

type serviceFlags struct {
	name, slug, description, icon string
	features                      []string
	order                         int
}

func newServicesCmd(a *app) *cobra.Command {
	c := collection[entities.Service]{
		use: "services", singular: "service", plural: "services",
		slice:  func() *store.Slice[entities.Service] { return a.store.Services },
		render: views.Services,
	}
	return contentCmd(a, c,
		func(cmd *cobra.Command) func(*forms.ServiceDraft) error {
			f := &serviceFlags{}
			fl := cmd.Flags()
			fl.StringVar(&f.name, "name", "", "service name")
			fl.StringVar(&f.slug, "slug", "", "URL slug (derived from the name when blank)")
			fl.StringVar(&f.description, "description", "", "description")
			fl.StringVar(&f.icon, "icon", "", "icon name, e.g. smart_toy or SmartToy")
			fl.StringArrayVar(&f.features, "feature", nil, "feature line (repeatable)")
			fl.IntVar(&f.order, "order", 0, "display order")
			return func(d *forms.ServiceDraft) error {
				changed(cmd, "name", &d.Name, f.name)
				changed(cmd, "slug", &d.Slug, f.slug)
				changed(cmd, "description", &d.Description, f.description)
				changed(cmd, "icon", &d.Icon, f.icon)
				changed(cmd, "feature", &d.Features, f.features)
				changed(cmd, "order", &d.Order, f.order)
				return nil
			}
		},
		forms.ServiceDraftFrom,
	)
}

type caseStudyFlags struct {
	title, slug, description string
	client, industry         string
	challenge, solution      string
	results, technologies    []string
	image                    string
	order                    int
}

func newCaseStudiesCmd(a *app) *cobra.Command {
	c := collection[entities.CaseStudy]{
		use: "case-studies", singular: "case study", plural: "case studies",
		slice:  func() *store.Slice[entities.CaseStudy] { return a.store.CaseStudies },
		render: views.CaseStudies,
	}
	return contentCmd(a, c,
		func(cmd *cobra.Command) func(*forms.CaseStudyDraft) error {
			f := &caseStudyFlags{}
			fl := cmd.Flags()
			fl.StringVar(&f.title, "title", "", "title")
			fl.StringVar(&f.slug, "slug", "", "URL slug (derived by the server when blank)")
			fl.StringVar(&f.description, "description", "", "summary")
			fl.StringVar(&f.client, "client", "", "client name")
			fl.StringVar(&f.industry, "industry", "", "client industry")
			fl.StringVar(&f.challenge, "challenge", "", "the problem")
			fl.StringVar(&f.solution, "solution", "", "what was built")
			fl.StringArrayVar(&f.results, "result", nil, "result line (repeatable)")
			fl.StringArrayVar(&f.technologies, "technology", nil, "technology (repeatable)")
			fl.StringVar(&f.image, "image", "", "path to a cover image")
			fl.IntVar(&f.order, "order", 0, "display order (defaults to last)")
			return func(d *forms.CaseStudyDraft) error {
				changed(cmd, "title", &d.Title, f.title)
				changed(cmd, "slug", &d.Slug, f.slug)
				changed(cmd, "description", &d.Description, f.description)
				changed(cmd, "client", &d.ClientName, f.client)
				changed(cmd, "industry", &d.ClientIndustry, f.industry)
				changed(cmd, "challenge", &d.Challenge, f.challenge)
				changed(cmd, "solution", &d.Solution, f.solution)
				changed(cmd, "result", &d.Results, f.results)
				changed(cmd, "technology", &d.Technologies, f.technologies)
				if cmd.Flags().Changed("order") {
					order := f.order
					d.Order = &order
				}
				return loadImage(cmd, f.image, &d.Image)
			}
		},
		forms.CaseStudyDraftFrom,
	)
}

// contentCmd assembles list, add, edit and delete for one collection. flags
// registers the draft flags on a command and returns their applier.
func contentCmd[T store.Identifiable, D forms.Draft](
	a *app,
	c collection[T],
	flags func(*cobra.Command) func(*D) error,
	prefill func(T) D,
) *cobra.Command {
	root := &cobra.Command{Use: c.use, Short: "Manage " + c.plural}

	addCmd := &cobra.Command{Use: "add", Short: "Add a " + c.singular, Args: cobra.NoArgs}
	applyAdd := flags(addCmd)
	addCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return add(cmd.Context(), a, c, applyAdd)
	}

	editCmd := &cobra.Command{Use: "edit ID", Short: "Edit a " + c.singular + "; only given flags change", Args: cobra.ExactArgs(1)}
	applyEdit := flags(editCmd)
	editCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return edit(cmd.Context(), a, c, args[0], prefill, applyEdit)
	}

	root.AddCommand(listCmd(a, c), addCmd, editCmd, deleteCmd(a, c))
	return root
}

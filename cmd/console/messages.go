package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sarb.backend/internal/console/notify"
	"sarb.backend/internal/console/store"
	"sarb.backend/internal/console/views"
	"sarb.backend/internal/domain/entities"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show content and inbox counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			user, err := a.store.Session.LoadUser(ctx)
			if err != nil && !a.store.Session.Authenticated() {
				return err
			}
			o, err := a.store.Overview(ctx)
			var msg string
			if err != nil {
				msg = store.ErrorMessage(err, "Failed to load the overview")
			}
			if rerr := views.Dashboard(a.out, user, o, msg); rerr != nil {
				return rerr
			}
			if err != nil {
				return errReported
			}
			return nil
		},
	}
}

func newMessagesCmd(a *app) *cobra.Command {
	c := collection[entities.ContactMessage]{
		use: "messages", singular: "message", plural: "messages",
		slice: func() *store.Slice[entities.ContactMessage] { return a.store.Messages.Slice },
		render: func(w io.Writer, st store.State[entities.ContactMessage]) error {
			return views.Messages(w, st, 0, a.cfg.PageSize)
		},
	}
	root := &cobra.Command{Use: "messages", Short: "Read and manage contact messages"}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := fetch(cmd.Context(), a, c)
			if err != nil {
				return err
			}
			return views.Messages(a.out, st, page-1, a.cfg.PageSize)
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a message in full and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg, err := find(cmd.Context(), a, c, id)
			if err != nil {
				return err
			}
			if !msg.IsRead {
				if updated, err := a.store.Messages.MarkRead(cmd.Context(), id); err == nil {
					msg = updated
				}
			}
			return views.Message(a.out, msg)
		},
	}

	read := &cobra.Command{
		Use:   "read ID",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Messages.MarkRead(cmd.Context(), id); err != nil {
				msg := a.store.Messages.State().Error
				a.store.Notifications.Add("Update failed", msg, notify.Error)
				return errors.New(msg)
			}
			fmt.Fprintf(a.out, "Marked message %d as read\n", id)
			return nil
		},
	}

	root.AddCommand(list, show, read, deleteCmd(a, c))
	return root
}

func newNotificationsCmd(a *app) *cobra.Command {
	var (
		markRead string
		all      bool
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show this session's notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := a.store.Notifications
			switch {
			case clearAll:
				n.Clear()
			case all:
				n.MarkAllAsRead()
			case markRead != "":
				n.MarkAsRead(markRead)
			}
			return views.Notifications(a.out, n.List(), n.UnreadCount())
		},
	}
	cmd.Flags().StringVar(&markRead, "read", "", "mark one notification as read")
	cmd.Flags().BoolVar(&all, "read-all", false, "mark every notification as read")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every notification")
	return cmd
}

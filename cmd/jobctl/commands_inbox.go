package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/employer/employersrv"
	"github.com/Abraxas-365/hireboard/recruitment/interview"
	"github.com/Abraxas-365/hireboard/recruitment/interview/interviewsrv"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/Abraxas-365/hireboard/recruitment/notification/notificationsrv"
)

func init() {
	register("notifications", "list, read, delete or watch notifications", runNotifications)
	register("interviews", "list or cancel interviews", runInterviews)
}

// notifications [--unread] [--type T]
// notifications read <id> | read-all | delete <id> | watch
func runNotifications(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("notifications")
	unread := fs.Bool("unread", false, "unread only")
	typ := fs.String("type", "", "APPLICATION_UPDATE, NEW_APPLICATION, INTERVIEW, JOB_MATCH or SYSTEM")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	inbox := notificationsrv.NewInbox(app.Notifications,
		listx.WithPageSize[notification.Notification, notification.Filters](app.Config.API.PageSize))
	q := listx.Query[notification.Filters]{Filters: notification.Filters{
		Type: notification.NotificationType(strings.ToUpper(*typ)),
	}}
	if *unread {
		q.Filters.UnreadOnly = unread
	}

	switch fs.Arg(0) {
	case "read":
		id := fs.Arg(1)
		if err := loadUntil(ctx, inbox.List, q, id); err != nil {
			return err
		}
		if err := inbox.MarkRead(ctx, kernel.NotificationID(id)); err != nil {
			return err
		}
		fmt.Fprintln(out, "Marked as read.")
		return nil
	case "read-all":
		if err := inbox.MarkAllRead(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All notifications marked as read.")
		return nil
	case "delete":
		id := fs.Arg(1)
		if err := loadUntil(ctx, inbox.List, q, id); err != nil {
			return err
		}
		if err := inbox.Delete(ctx, kernel.NotificationID(id)); err != nil {
			return err
		}
		fmt.Fprintln(out, "Deleted.")
		return nil
	case "watch":
		return watchUnread(ctx, app, inbox)
	case "":
	default:
		return fmt.Errorf("unknown notifications action %q", fs.Arg(0))
	}

	if err := loadPages(ctx, inbox.List, q, *pages); err != nil {
		return err
	}
	if err := inbox.RefreshUnread(ctx); err != nil {
		return err
	}
	s := inbox.Snapshot()
	printNotifications(s.Items)
	footer(s)
	fmt.Fprintf(out, "%d unread\n", inbox.Unread())
	return nil
}

// badge prints the unread count whenever the poller sees it change
type badge struct {
	inbox *notificationsrv.Inbox

	mu   sync.Mutex
	last int
}

func (b *badge) RefreshUnread(ctx context.Context) error {
	if err := b.inbox.RefreshUnread(ctx); err != nil {
		return err
	}
	n := b.inbox.Unread()

	b.mu.Lock()
	defer b.mu.Unlock()
	if n != b.last {
		fmt.Fprintf(out, "%d unread notification(s)\n", n)
		b.last = n
	}
	return nil
}

func watchUnread(ctx context.Context, app *Container, inbox *notificationsrv.Inbox) error {
	b := &badge{inbox: inbox, last: -1}
	if err := b.RefreshUnread(ctx); err != nil {
		return err
	}

	poller, err := notificationsrv.NewPoller(b, app.Config.PollSpec)
	if err != nil {
		return err
	}
	if err := poller.Start(ctx); err != nil {
		return err
	}
	logx.Infof("Watching notifications (%s), Ctrl+C to stop", app.Config.PollSpec)
	<-ctx.Done()
	poller.Stop()
	return nil
}

// interviews [--upcoming] [--status S] | interviews cancel <id> [--reason]
func runInterviews(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("interviews")
	upcoming := fs.Bool("upcoming", false, "upcoming only")
	status := fs.String("status", "", "SCHEDULED, RESCHEDULED, COMPLETED or CANCELLED")
	reason := fs.String("reason", "", "cancellation reason")
	pages := pagesFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var gateway interview.Gateway = app.Interviews
	if user := app.Session.Current().User; user != nil && user.IsEmployer() {
		gateway = employersrv.InterviewGateway(app.Employer, app.Interviews)
	}
	agenda := interviewsrv.NewAgenda(gateway, app.Confirmer,
		listx.WithPageSize[interview.Interview, interview.Filters](app.Config.API.PageSize))
	q := listx.Query[interview.Filters]{Filters: interview.Filters{
		Status: interview.InterviewStatus(strings.ToUpper(*status)),
	}}
	if *upcoming {
		q.Filters.Upcoming = upcoming
	}

	if fs.Arg(0) == "cancel" {
		id := fs.Arg(1)
		if err := loadUntil(ctx, agenda.List, q, id); err != nil {
			return err
		}
		if err := agenda.Cancel(ctx, kernel.InterviewID(id), *reason); err != nil {
			return err
		}
		fmt.Fprintln(out, "Interview cancelled.")
		return nil
	}

	if err := loadPages(ctx, agenda.List, q, *pages); err != nil {
		return err
	}
	s := agenda.Snapshot()
	printInterviews(s.Items)
	footer(s)
	return nil
}

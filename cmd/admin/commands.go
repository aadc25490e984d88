package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/presenter"
	"github.com/mishasvintus/team_roster_admin/internal/store"
)

var errUsage = errors.New("usage")

const usageText = `usage:
  admin members list
  admin members show <id>
  admin members add -first-name NAME -last-name NAME -email EMAIL -phone "(555) 123-4567" -role-id ID
  admin members edit <id> [-first-name NAME] [-last-name NAME] [-email EMAIL] [-phone PHONE] [-role-id ID]
  admin members delete <id>
  admin roles list
`

type app struct {
	session *store.Session
	form    *presenter.MemberForm
	list    *presenter.MemberList
	out     io.Writer
	errOut  io.Writer
	log     *zap.SugaredLogger
}

func newApp(
	members store.Remote[domain.TeamMember, int64, domain.TeamMemberDraft],
	roles store.Remote[domain.Role, int64, domain.RoleDraft],
	out, errOut io.Writer,
	log *zap.SugaredLogger,
) *app {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	session := store.NewSession(members, roles, log)
	sink := presenter.Sinks{presenter.NewWriterSink(errOut), presenter.NewLogSink(log)}
	nav := presenter.NavigatorFunc(func(_ context.Context, to presenter.Route) {
		log.Debugw("navigate", "route", to)
	})

	return &app{
		session: session,
		form:    presenter.NewMemberForm(session.TeamMembers, session.Roles, sink, nav, log),
		list:    presenter.NewMemberList(session.TeamMembers, sink, nav, log),
		out:     out,
		errOut:  errOut,
		log:     log.Named("admin"),
	}
}

func (a *app) Close() {
	a.session.Close()
}

func (a *app) usage() {
	fmt.Fprint(a.errOut, usageText)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}

	switch args[0] + " " + args[1] {
	case "members list":
		return a.listMembers(ctx)
	case "members show":
		id, err := parseID(args[2:])
		if err != nil {
			return err
		}
		return a.showMember(ctx, id)
	case "members add":
		return a.addMember(ctx, args[2:])
	case "members edit":
		id, err := parseID(args[2:])
		if err != nil {
			return err
		}
		return a.editMember(ctx, id, args[3:])
	case "members delete":
		id, err := parseID(args[2:])
		if err != nil {
			return err
		}
		return a.list.Remove(ctx, id)
	case "roles list":
		return a.listRoles(ctx)
	default:
		return errUsage
	}
}

func (a *app) listMembers(ctx context.Context) error {
	if err := a.list.Refresh(ctx); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tROLE\tCAN DELETE")
	for _, m := range a.list.Rows() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.FullName(), m.Email, m.PhoneNumber, roleName(m.Role), yesNo(presenter.CanDelete(m.Role)))
	}
	return tw.Flush()
}

func (a *app) showMember(ctx context.Context, id int64) error {
	if _, err := a.form.Open(ctx, id); err != nil {
		return err
	}
	m, ok := a.session.TeamMembers.Find(id)
	if !ok {
		return fmt.Errorf("member %d missing after load", id)
	}
	a.printMember(m)
	return nil
}

func (a *app) addMember(ctx context.Context, args []string) error {
	f := newMemberFlags("add")
	if err := f.fs.Parse(args); err != nil {
		return errUsage
	}

	var draft domain.TeamMemberDraft
	f.apply(&draft)
	return a.submit(ctx, 0, draft)
}

func (a *app) editMember(ctx context.Context, id int64, args []string) error {
	f := newMemberFlags("edit")
	if err := f.fs.Parse(args); err != nil {
		return errUsage
	}

	draft, err := a.form.Open(ctx, id)
	if err != nil {
		return err
	}
	f.apply(&draft)
	return a.submit(ctx, id, draft)
}

func (a *app) submit(ctx context.Context, id int64, draft domain.TeamMemberDraft) error {
	m, err := a.form.Submit(ctx, id, draft)
	if err != nil {
		var fields presenter.FieldErrors
		if errors.As(err, &fields) {
			a.printFieldErrors(fields)
		}
		return err
	}
	a.printMember(m)
	return nil
}

func (a *app) listRoles(ctx context.Context) error {
	roles, err := a.form.Roles(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADMIN\tPERMISSIONS")
	for _, r := range roles {
		names := make([]string, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			names = append(names, p.Name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, yesNo(r.IsAdmin), strings.Join(names, ", "))
	}
	return tw.Flush()
}

func (a *app) printMember(m domain.TeamMember) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", m.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", m.FullName())
	fmt.Fprintf(tw, "Email:\t%s\n", m.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", m.PhoneNumber)
	fmt.Fprintf(tw, "Role:\t%s\n", roleName(m.Role))
	fmt.Fprintf(tw, "Can delete:\t%s\n", yesNo(presenter.CanDelete(m.Role)))
	_ = tw.Flush()
}

func (a *app) printFieldErrors(fields presenter.FieldErrors) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %s: %s\n", name, fields[name])
	}
}

type memberFlags struct {
	fs        *flag.FlagSet
	firstName string
	lastName  string
	email     string
	phone     string
	roleID    int64
}

func newMemberFlags(name string) *memberFlags {
	f := &memberFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.fs.SetOutput(io.Discard)
	f.fs.StringVar(&f.firstName, "first-name", "", "first name")
	f.fs.StringVar(&f.lastName, "last-name", "", "last name")
	f.fs.StringVar(&f.email, "email", "", "email address")
	f.fs.StringVar(&f.phone, "phone", "", "phone number, (XXX) XXX-XXXX")
	f.fs.Int64Var(&f.roleID, "role-id", 0, "role id")
	return f
}

// apply overwrites the draft fields whose flags were given.
func (f *memberFlags) apply(d *domain.TeamMemberDraft) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "first-name":
			d.FirstName = f.firstName
		case "last-name":
			d.LastName = f.lastName
		case "email":
			d.Email = f.email
		case "phone":
			d.PhoneNumber = f.phone
		case "role-id":
			id := f.roleID
			d.RoleID = &id
		}
	})
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

func roleName(r *domain.Role) string {
	if r == nil {
		return "-"
	}
	return r.Name
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
